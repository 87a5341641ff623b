// Writer implementation printing pose rows to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"lightseek-sim/internal/telemetry"
)

// StdoutWriter prints pose rows as JSON lines to STDOUT.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a StdoutWriter writing to os.Stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout}
}

// Write outputs a single pose row in JSON format.
func (w *StdoutWriter) Write(row telemetry.PoseRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}
