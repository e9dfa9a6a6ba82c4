package testutil

import "github.com/craftec/rpbuilder/pkg/warnings"

// StepRecorder collects progress lines
type StepRecorder struct {
	Steps []string
}

// Step implements build.Progress
func (r *StepRecorder) Step(message string) { r.Steps = append(r.Steps, message) }

// SinkRecorder collects emitted warnings
type SinkRecorder struct {
	Warnings []warnings.Warning
}

// Emit implements warnings.Sink
func (r *SinkRecorder) Emit(w warnings.Warning) { r.Warnings = append(r.Warnings, w) }

// Lines renders the collected warnings as they would be printed
func (r *SinkRecorder) Lines() []string {
	out := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		out[i] = w.String()
	}
	return out
}
