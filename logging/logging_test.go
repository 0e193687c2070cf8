package logging

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineLogger(t *testing.T) {
	{ // One line per call, errors prefixed
		var buf bytes.Buffer
		log := New(&buf)
		log.Infof("step %d", 3)
		log.Errorf("bad %s", "state")
		assert.Equal(t, "step 3\nerror: bad state\n", buf.String())
	}
	{ // Concurrent writers never interleave within a line
		var buf bytes.Buffer
		log := New(&buf)
		var wg sync.WaitGroup
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				log.Infof("rank %d reporting", n)
			}(n)
		}
		wg.Wait()
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		assert.Equal(t, 8, len(lines))
		for _, line := range lines {
			assert.Contains(t, string(line), "reporting")
		}
	}
}

func TestRanked(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)
	Ranked(log, 1).Infof("silenced")
	Ranked(log, 1).Errorf("silenced")
	assert.Equal(t, "", buf.String())
	Ranked(log, 0).Infof("heard")
	assert.Equal(t, "heard\n", buf.String())
}
