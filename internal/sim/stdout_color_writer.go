// ColorStdoutWriter prints human-friendly, colorized pose rows to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"lightseek-sim/internal/config"
	"lightseek-sim/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints pose rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.SimulationConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.SimulationConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Simulation Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Arena:\t%.0f x %.0f\n", w.cfg.Arena.Width, w.cfg.Arena.Height)
	fmt.Fprintf(tw, "Robot Start:\t(%.0f, %.0f) phi=%.2f\n", w.cfg.Robot.X, w.cfg.Robot.Y, w.cfg.Robot.Phi)
	fmt.Fprintf(tw, "Light Source:\t(%.0f, %.0f)\n", w.cfg.Light.X, w.cfg.Light.Y)
	fmt.Fprintf(tw, "Success Threshold:\t%.0f\n", w.cfg.Light.SuccessThreshold)
	fmt.Fprintf(tw, "Proximity Threshold:\t%.0f\n", w.cfg.Behavior.ProximityThreshold)
	fmt.Fprintf(tw, "Obstacles:\t%d\n", w.cfg.Obstacles.Count)
	tw.Flush()
	fmt.Fprintln(w.out)
}

// stateColor maps behavior states to their display color.
func stateColor(state string) string {
	switch state {
	case telemetry.StateSeeking:
		return colorGreen
	case telemetry.StateTumbling:
		return colorYellow
	case telemetry.StateAvoiding:
		return colorRed
	case telemetry.StateStopped:
		return colorBlue
	}
	return colorReset
}

// Write outputs a single pose row in colorized format.
func (w *ColorStdoutWriter) Write(row telemetry.PoseRow) error {
	w.once.Do(w.printOverview)

	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%stick=%d%s ", colorBlue, row.Tick, colorReset)
	fmt.Fprintf(w.out, "%spos=(%.1f,%.1f)%s ", colorGreen, row.X, row.Y, colorReset)
	fmt.Fprintf(w.out, "%sphi=%.2f%s ", colorCyan, row.Phi, colorReset)
	fmt.Fprintf(w.out, "%sint=%.1f%s ", colorMagenta, row.Intensity, colorReset)
	fmt.Fprintf(w.out, "%sbeams=(%.0f,%.0f,%.0f,%.0f)%s ",
		colorYellow, row.DistLeft, row.DistFront, row.DistRight, row.DistBack, colorReset)
	fmt.Fprintf(w.out, "%sstate=%s%s", stateColor(row.State), row.State, colorReset)
	fmt.Fprintln(w.out)
	return nil
}
