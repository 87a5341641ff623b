package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lightseek-sim/internal/admin"
	"lightseek-sim/internal/config"
	"lightseek-sim/internal/logging"
	"lightseek-sim/internal/sim"
)

var (
	simConfigPath string
	simSchemaPath string
	simTick       time.Duration
	simSeed       int64
	simMaxTicks   int64
	simTUI        bool
	simColor      bool
	simAdminAddr  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time light-seeking simulator",
	Long:  "simulate starts the tick loop and emits one pose row per tick until the robot reaches the light source.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}

		seed := cfg.Seed
		if cmd.Flags().Changed("seed") {
			seed = simSeed
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		writer, tuiWriter, cleanup, err := newWriter(cfg, simTUI, simColor)
		if err != nil {
			return err
		}
		defer cleanup()

		var logger *slog.Logger
		if simTUI {
			// The TUI owns the terminal.
			logger = logging.NewAt(io.Discard)
		} else {
			logger = logging.New()
		}

		simulator := sim.NewSimulator(cfg, writer, simTick, simMaxTicks, seed)
		logger = logging.WithRun(logger, simulator.RunID())

		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))
		defer cancel()

		if tuiWriter != nil {
			tuiWriter.SetObstacles(simulator.Obstacles())
			tuiWriter.SetPauseFunc(simulator.TogglePause)
		}

		if simAdminAddr != "" {
			srv := admin.NewServer(simulator)
			go func() {
				if err := srv.Start(ctx, simAdminAddr); err != nil {
					logger.Error("admin server failed", "err", err)
				}
			}()
		}

		done := make(chan struct{})
		go func() {
			simulator.Run(ctx)
			close(done)
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		if simTUI {
			// The run may finish first, but the TUI stays up (showing the
			// final state) until the user quits, which raises SIGINT.
			<-sigs
		} else {
			select {
			case <-sigs:
			case <-done:
			}
		}

		cancel()
		logger.Info("simulation stopped", "ticks", simulator.Ticks(), "reached", simulator.Terminated())
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	simulateCmd.Flags().DurationVar(&simTick, "tick", 10*time.Millisecond, "Tick interval (e.g. 10ms, 1s)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Override the config seed (0 uses wall-clock time)")
	simulateCmd.Flags().Int64Var(&simMaxTicks, "max-ticks", 0, "Stop after this many ticks (0 runs until the light is reached)")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render the arena in a terminal UI")
	simulateCmd.Flags().BoolVar(&simColor, "color", false, "Colorize STDOUT output")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin", "", "Address for the admin API (e.g. :8080, empty disables it)")
}
