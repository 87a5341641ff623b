package sim

import (
	"context"
	"math"
	"testing"
	"time"

	"lightseek-sim/internal/config"
	"lightseek-sim/internal/geometry"
	"lightseek-sim/internal/telemetry"
)

// MockWriter collects pose rows for validation
type MockWriter struct {
	Rows []telemetry.PoseRow
}

func (w *MockWriter) Write(row telemetry.PoseRow) error {
	w.Rows = append(w.Rows, row)
	return nil
}

func testConfig() *config.SimulationConfig {
	return &config.SimulationConfig{
		Arena: config.Arena{Width: 700, Height: 700},
		Robot: config.Robot{
			X: 100, Y: 600, Phi: 7 * math.Pi / 4,
			HalfLength: 15, HalfBreadth: 6,
			Speed: 0.3, TurnRate: 0.05,
		},
		Light: config.Light{
			X: 350, Y: 350,
			IntensityScaling: 1e5,
			SuccessThreshold: 1e4,
		},
		Behavior: config.Behavior{
			ProximityThreshold:  40,
			TumbleAngleScale:    60,
			AvoidStepDuration:   10,
			AvoidTurnDuration:   30,
			ForwardStepDuration: 1,
		},
		Seed: 42,
	}
}

func TestSimulator_TickEmitsRow(t *testing.T) {
	cfg := testConfig()
	writer := &MockWriter{}
	sim := NewSimulator(cfg, writer, time.Millisecond, 0, cfg.Seed)

	sim.tick(context.Background())

	if len(writer.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(writer.Rows))
	}
	row := writer.Rows[0]
	if row.RunID == "" {
		t.Error("row has no run ID")
	}
	if row.Tick != 0 {
		t.Errorf("first tick = %d, want 0", row.Tick)
	}
	if row.X != 100 || row.Y != 600 {
		t.Errorf("row records pose (%v,%v), want sensing pose (100,600)", row.X, row.Y)
	}
	if row.Intensity <= 0 {
		t.Errorf("intensity = %v, want positive", row.Intensity)
	}
	for i, b := range row.Beams {
		if b == (telemetry.Endpoint{}) {
			t.Errorf("beam %d endpoint not set", i)
		}
	}
	if sim.Ticks() != 1 {
		t.Errorf("tick count = %d, want 1", sim.Ticks())
	}
}

func TestSimulator_ReachesLight(t *testing.T) {
	cfg := testConfig()
	// Widen the success radius to sqrt(1e5/100) ≈ 32 units so the run
	// stays short.
	cfg.Light.SuccessThreshold = 100
	writer := &MockWriter{}
	sim := NewSimulator(cfg, writer, time.Millisecond, 0, cfg.Seed)

	light := geometry.Vec{X: cfg.Light.X, Y: cfg.Light.Y}
	ctx := context.Background()
	for i := 0; i < 20000 && !sim.Terminated(); i++ {
		sim.tick(ctx)
	}

	if !sim.Terminated() {
		t.Fatal("robot never reached the light source")
	}
	if sim.State() != telemetry.StateStopped {
		t.Errorf("terminal state = %q, want stopped", sim.State())
	}
	last := writer.Rows[len(writer.Rows)-1]
	if last.State != telemetry.StateStopped {
		t.Errorf("last row state = %q, want stopped", last.State)
	}
	// Seeking is only ever entered on a rising intensity reading.
	for i := 1; i < len(writer.Rows); i++ {
		if writer.Rows[i].State == telemetry.StateSeeking &&
			writer.Rows[i].Intensity <= writer.Rows[i-1].Intensity {
			t.Errorf("tick %d seeking on falling intensity %v -> %v",
				i, writer.Rows[i-1].Intensity, writer.Rows[i].Intensity)
			break
		}
	}
	pose := sim.Pose()
	if d := pose.Position().Dist(light); d > 35 {
		t.Errorf("robot ended %.1f units from the light", d)
	}
}

func TestSimulator_SeekingShrinksDistanceToLight(t *testing.T) {
	cfg := testConfig()
	cfg.Light.SuccessThreshold = 100
	writer := &MockWriter{}
	sim := NewSimulator(cfg, writer, time.Millisecond, 0, cfg.Seed)

	light := geometry.Vec{X: cfg.Light.X, Y: cfg.Light.Y}
	ctx := context.Background()
	for i := 0; i < 5000 && !sim.Terminated(); i++ {
		sim.tick(ctx)
	}
	if !sim.Terminated() {
		t.Fatal("robot never reached the light source")
	}

	// The start heading points straight at the source, and the gradient
	// baseline starts at zero, so every tick until termination is a run.
	if writer.Rows[0].State != telemetry.StateSeeking {
		t.Fatalf("first tick state = %q, want seeking", writer.Rows[0].State)
	}
	seeking := 0
	for i := 1; i < len(writer.Rows); i++ {
		prev, cur := writer.Rows[i-1], writer.Rows[i]
		if prev.State != telemetry.StateSeeking {
			continue
		}
		seeking++
		dPrev := math.Hypot(prev.X-light.X, prev.Y-light.Y)
		dCur := math.Hypot(cur.X-light.X, cur.Y-light.Y)
		if dCur >= dPrev {
			t.Fatalf("tick %d: distance to light grew %.3f -> %.3f during a run",
				i, dPrev, dCur)
		}
	}
	if seeking == 0 {
		t.Fatal("run produced no seeking ticks")
	}
}

func TestSimulator_TerminatedTickIsNoop(t *testing.T) {
	cfg := testConfig()
	writer := &MockWriter{}
	sim := NewSimulator(cfg, writer, time.Millisecond, 0, cfg.Seed)
	sim.terminated = true

	sim.tick(context.Background())

	if len(writer.Rows) != 0 {
		t.Errorf("terminated simulator wrote %d rows", len(writer.Rows))
	}
}

func TestSimulator_PauseStopsWorld(t *testing.T) {
	cfg := testConfig()
	writer := &MockWriter{}
	sim := NewSimulator(cfg, writer, time.Millisecond, 0, cfg.Seed)

	if !sim.TogglePause() {
		t.Fatal("TogglePause did not report paused")
	}
	sim.tick(context.Background())
	if len(writer.Rows) != 0 || sim.Ticks() != 0 {
		t.Error("paused simulator advanced the world")
	}

	if sim.TogglePause() {
		t.Fatal("second TogglePause did not resume")
	}
	sim.tick(context.Background())
	if len(writer.Rows) != 1 {
		t.Error("resumed simulator did not tick")
	}
}

func TestSimulator_Deterministic(t *testing.T) {
	cfg := testConfig()
	a := NewSimulator(cfg, &MockWriter{}, time.Millisecond, 0, cfg.Seed)
	b := NewSimulator(cfg, &MockWriter{}, time.Millisecond, 0, cfg.Seed)

	ctx := context.Background()
	for i := 0; i < 500; i++ {
		a.tick(ctx)
		b.tick(ctx)
	}
	pa, pb := a.Pose(), b.Pose()
	if pa.X != pb.X || pa.Y != pb.Y || pa.Phi != pb.Phi {
		t.Errorf("same seed diverged: %+v vs %+v", pa, pb)
	}
}

func TestSimulator_RunStopsAtMaxTicks(t *testing.T) {
	cfg := testConfig()
	writer := &MockWriter{}
	sim := NewSimulator(cfg, writer, time.Millisecond, 5, cfg.Seed)

	done := make(chan struct{})
	go func() {
		sim.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop at the tick limit")
	}
	if sim.Ticks() != 5 {
		t.Errorf("ran %d ticks, want 5", sim.Ticks())
	}
}

func TestSimulator_Snapshot(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.Fixed = []config.FixedObstacle{{X: 500, Y: 200, Radius: 40}}
	sim := NewSimulator(cfg, &MockWriter{}, time.Millisecond, 0, cfg.Seed)
	sim.tick(context.Background())

	snap := sim.Snapshot()
	if snap.RunID != sim.RunID() {
		t.Errorf("snapshot run ID %q != %q", snap.RunID, sim.RunID())
	}
	if snap.Tick != 1 {
		t.Errorf("snapshot tick = %d, want 1", snap.Tick)
	}
	if len(snap.Obstacles) != 1 || snap.Obstacles[0].Radius != 40 {
		t.Errorf("snapshot obstacles = %+v", snap.Obstacles)
	}
	if snap.Light.X != 350 || snap.Light.Y != 350 {
		t.Errorf("snapshot light = %+v", snap.Light)
	}
	if snap.Row.Tick != 0 {
		t.Errorf("snapshot row tick = %d, want 0", snap.Row.Tick)
	}
}
