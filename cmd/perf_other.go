//go:build !linux
// +build !linux

package cmd

import (
	"github.com/notargets/gomarch/logging"
	"github.com/notargets/gomarch/steppers"
)

// Hardware performance counters are a linux perf facility.
func advanceCounted(advance func() steppers.Result, log logging.Logger, rank int) steppers.Result {
	log.Errorf("rank %d: perf counters are only available on linux", rank)
	return advance()
}
