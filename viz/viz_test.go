package viz

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/logging"
	"github.com/notargets/gomarch/utils"
)

func testFields() (x fields.Coordinates, fs []fields.Named) {
	x = fields.Coordinates{utils.NewVector(4, []float64{0, 0.25, 0.5, 0.75})}
	fs = []fields.Named{
		{Label: "rho", V: utils.NewVector(4, []float64{1, 2, 2, 1})},
		{Label: "pressure", V: utils.NewVector(4, []float64{1, 1.5, 1.5, 1})},
	}
	return
}

func TestCSV(t *testing.T) {
	var (
		dir   = t.TempDir()
		x, fs = testFields()
		s     = &CSV{Dir: dir, X: x}
	)
	assert.NoError(t, s.Dump("case-0000-0003", 3, 0.15, fs))
	data, err := os.ReadFile(filepath.Join(dir, "case-0000-0003.csv"))
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, 5, len(lines)) // header plus one row per cell
	assert.Equal(t, "x,rho,pressure", lines[0])
	assert.Equal(t, "2.5000000000e-01,2.0000000000e+00,1.5000000000e+00", lines[1+1])
	{ // Dumps into a missing directory fail loudly
		s := &CSV{Dir: filepath.Join(dir, "nope"), X: x}
		assert.Error(t, s.Dump("case-0000-0003", 3, 0.15, fs))
	}
}

func TestPNG(t *testing.T) {
	var (
		dir   = t.TempDir()
		x, fs = testFields()
		s     = &PNG{Dir: dir, X: x}
	)
	assert.NoError(t, s.Dump("case-0000-0003", 3, 0.15, fs))
	info, err := os.Stat(filepath.Join(dir, "case-0000-0003.png"))
	assert.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestASCII(t *testing.T) {
	_, fs := testFields()
	{ // The first field is charted by default
		var buf bytes.Buffer
		s := &ASCII{Log: logging.New(&buf)}
		assert.NoError(t, s.Dump("case-0000-0003", 3, 0.15, fs))
		assert.Contains(t, buf.String(), "rho  step 3  t= 0.15000")
	}
	{ // A labeled field can be picked, case insensitively
		var buf bytes.Buffer
		s := &ASCII{Log: logging.New(&buf), Field: "Pressure"}
		assert.NoError(t, s.Dump("case-0000-0003", 3, 0.15, fs))
		assert.Contains(t, buf.String(), "pressure  step 3")
	}
	{ // Unknown labels are an error
		var buf bytes.Buffer
		s := &ASCII{Log: logging.New(&buf), Field: "vorticity"}
		assert.Error(t, s.Dump("case-0000-0003", 3, 0.15, fs))
		assert.Equal(t, "", buf.String())
	}
}
