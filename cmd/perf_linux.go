//go:build linux
// +build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"

	"github.com/notargets/gomarch/logging"
	"github.com/notargets/gomarch/steppers"
)

// advanceCounted runs one rank's advance under a hardware instruction
// counter. The counting locks the goroutine to its OS thread, so the count
// covers exactly this rank's work.
func advanceCounted(advance func() steppers.Result, log logging.Logger, rank int) (res steppers.Result) {
	// Probe first: when the counter cannot open, the advance must still run
	// or the other ranks block on collectives.
	if _, err := perf.CPUInstructions(func() error { return nil }); err != nil {
		log.Errorf("rank %d perf counters unavailable: %s", rank, err.Error())
		return advance()
	}
	pv, err := perf.CPUInstructions(func() error {
		res = advance()
		return nil
	})
	if err != nil {
		log.Errorf("rank %d perf read failed: %s", rank, err.Error())
		return
	}
	log.Infof("rank %d: %d CPU instructions retired", rank, pv.Value)
	return
}
