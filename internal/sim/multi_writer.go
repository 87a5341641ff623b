package sim

import "lightseek-sim/internal/telemetry"

// MultiWriter fans out pose rows to multiple writers.
type MultiWriter struct {
	writers []PoseWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...PoseWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends a pose row to all writers.
func (mw *MultiWriter) Write(row telemetry.PoseRow) error {
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
