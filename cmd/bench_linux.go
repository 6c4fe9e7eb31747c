//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

// hardwareCounters runs f once per counter on the calling thread
func hardwareCounters(f func() error) (instructions, cycles uint64, err error) {
	var (
		pv *perf.ProfileValue
	)
	if pv, err = perf.CPUInstructions(f); err != nil {
		return
	}
	instructions = pv.Value
	if pv, err = perf.CPUCycles(f); err != nil {
		return
	}
	cycles = pv.Value
	return
}
