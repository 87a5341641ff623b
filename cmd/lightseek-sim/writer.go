package main

import (
	"lightseek-sim/internal/config"
	"lightseek-sim/internal/sim"
)

// newWriter selects the pose writer from flags. The TUI writer is also
// returned directly so the caller can wire simulator callbacks into it, and
// the cleanup function tears it down.
func newWriter(cfg *config.SimulationConfig, useTUI, useColor bool) (sim.PoseWriter, *sim.TUIWriter, func(), error) {
	cleanup := func() {}
	if useTUI {
		tw := sim.NewTUIWriter(cfg)
		cleanup = func() { _ = tw.Close() }
		return tw, tw, cleanup, nil
	}
	if useColor {
		return sim.NewColorStdoutWriter(cfg), nil, cleanup, nil
	}
	return sim.NewStdoutWriter(), nil, cleanup, nil
}
