package sim

import (
	"testing"

	"golang.org/x/exp/rand"

	"lightseek-sim/internal/config"
	"lightseek-sim/internal/geometry"
)

func TestSpawnObstacles_Random(t *testing.T) {
	cfg := &config.SimulationConfig{
		Arena:     config.Arena{Width: 700, Height: 700},
		Robot:     config.Robot{X: 100, Y: 600},
		Obstacles: config.Obstacles{Count: 20, MinRadius: 20, MaxRadius: 60},
	}
	obstacles := SpawnObstacles(cfg, rand.New(rand.NewSource(1)))
	if len(obstacles) != 20 {
		t.Fatalf("spawned %d obstacles, want 20", len(obstacles))
	}
	start := geometry.Vec{X: 100, Y: 600}
	seen := map[string]bool{}
	for _, o := range obstacles {
		if o.R < 20 || o.R > 60 {
			t.Errorf("radius %v outside [20,60]", o.R)
		}
		if o.Center.X < o.R || o.Center.X > 700-o.R ||
			o.Center.Y < o.R || o.Center.Y > 700-o.R {
			t.Errorf("obstacle %+v leaves the arena", o.Circle)
		}
		if start.Dist(o.Center) <= o.R {
			t.Errorf("obstacle %+v covers the robot start", o.Circle)
		}
		if o.ID == "" || seen[o.ID] {
			t.Errorf("missing or duplicate obstacle ID %q", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestSpawnObstacles_FixedTakesPrecedence(t *testing.T) {
	cfg := &config.SimulationConfig{
		Arena: config.Arena{Width: 700, Height: 700},
		Robot: config.Robot{X: 100, Y: 600},
		Obstacles: config.Obstacles{
			Count: 5,
			Fixed: []config.FixedObstacle{{X: 300, Y: 300, Radius: 25}},
		},
	}
	obstacles := SpawnObstacles(cfg, rand.New(rand.NewSource(1)))
	if len(obstacles) != 1 {
		t.Fatalf("spawned %d obstacles, want the 1 fixed one", len(obstacles))
	}
	if obstacles[0].Center.X != 300 || obstacles[0].R != 25 {
		t.Errorf("unexpected obstacle %+v", obstacles[0].Circle)
	}
}
