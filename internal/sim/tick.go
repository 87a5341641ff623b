package sim

import (
	"context"
	"time"

	"lightseek-sim/internal/logging"
	"lightseek-sim/internal/telemetry"
)

// Run starts the simulation loop and blocks until the context is done, the
// robot reaches the light, or the tick limit is hit.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator",
		"run_id", s.runID,
		"tick_interval", s.tickInterval,
		"obstacles", len(s.obstacles),
	)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
			if s.Terminated() {
				log.Info("light source reached", "ticks", s.Ticks())
				return
			}
			if s.maxTicks > 0 && s.Ticks() >= s.maxTicks {
				log.Info("tick limit reached", "ticks", s.Ticks())
				return
			}
		case <-ctx.Done():
			log.Info("stopping simulator", "ticks", s.Ticks())
			return
		}
	}
}

// tick performs one sense-decide-act cycle and writes the resulting row.
func (s *Simulator) tick(ctx context.Context) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused || s.terminated {
		return
	}

	frame := s.suite.Read(&s.pose)
	last := s.pose.Intensity
	s.pose.LastIntensity = last
	s.pose.Intensity = frame.Intensity

	var steps []telemetry.CommandStep
	if frame.Intensity >= s.cfg.Light.SuccessThreshold {
		s.terminated = true
		s.state, steps = s.controller.Stop()
	} else {
		s.state, steps = s.controller.Decide(frame, last)
	}

	row := s.poseRow(frame)

	for _, step := range steps {
		Apply(&s.pose, step.Command, step.Duration)
	}

	s.tickCount++
	s.lastRow = row
	if err := s.writer.Write(row); err != nil {
		log.Error("write failed", "tick", row.Tick, "err", err)
	}
}

// poseRow builds the telemetry row for the frame just sensed. The pose in the
// row is the one the beams were measured from, before the motion steps ran.
func (s *Simulator) poseRow(frame telemetry.SensorFrame) telemetry.PoseRow {
	row := telemetry.PoseRow{
		RunID:     s.runID,
		Tick:      s.tickCount,
		X:         s.pose.X,
		Y:         s.pose.Y,
		Phi:       s.pose.Phi,
		Intensity: frame.Intensity,
		State:     s.state,
		DistLeft:  frame.Distances[0],
		DistFront: frame.Distances[1],
		DistRight: frame.Distances[2],
		DistBack:  frame.Distances[3],
		Timestamp: s.now().UTC(),
	}
	for i := range row.Beams {
		end := frame.Endpoint(i)
		row.Beams[i] = telemetry.Endpoint{X: end.X, Y: end.Y}
	}
	return row
}
