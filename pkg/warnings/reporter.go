package warnings

import (
	"fmt"
	"io"
	"strings"

	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/rs/zerolog"
)

// Sink receives warnings that survived suppression
type Sink interface {
	Emit(w Warning)
}

// WriterSink writes one plain line per warning
type WriterSink struct {
	Out io.Writer
}

// Emit implements Sink
func (s WriterSink) Emit(w Warning) {
	_, _ = fmt.Fprintln(s.Out, w.String())
}

// Reporter applies suppressions and forwards the remaining warnings to a sink
type Reporter struct {
	suppressions Suppressions
	sink         Sink
	logger       zerolog.Logger

	emitted    []Warning
	suppressed map[Kind]int
}

// NewReporter creates a reporter. A nil sink discards output but still records.
func NewReporter(suppressions Suppressions, sink Sink) *Reporter {
	return &Reporter{
		suppressions: suppressions,
		sink:         sink,
		logger:       logging.GetLogger("warnings"),
		suppressed:   make(map[Kind]int),
	}
}

// Report records a warning unless it is suppressed. It never fails.
func (r *Reporter) Report(kind Kind, identifier string, detail ...string) {
	w := Warning{
		Kind:       kind,
		Identifier: NormalizeIdentifier(identifier),
		Detail:     strings.Join(detail, " "),
	}

	if r.suppressions.Suppressed(kind, w.Identifier) {
		r.suppressed[kind]++
		r.logger.Debug().
			Str("kind", kind.String()).
			Str("identifier", w.Identifier).
			Msg("Warning suppressed")
		return
	}

	r.logger.Debug().
		Str("kind", kind.String()).
		Str("identifier", w.Identifier).
		Str("detail", w.Detail).
		Msg("Warning reported")

	r.emitted = append(r.emitted, w)
	if r.sink != nil {
		r.sink.Emit(w)
	}
}

// ReportAll forwards pre-built warnings, applying suppression to each
func (r *Reporter) ReportAll(ws []Warning) {
	for _, w := range ws {
		if w.Detail == "" {
			r.Report(w.Kind, w.Identifier)
			continue
		}
		r.Report(w.Kind, w.Identifier, w.Detail)
	}
}

// Warnings returns the emitted warnings in report order
func (r *Reporter) Warnings() []Warning {
	out := make([]Warning, len(r.emitted))
	copy(out, r.emitted)
	return out
}

// Count returns how many warnings of kind were emitted
func (r *Reporter) Count(kind Kind) int {
	n := 0
	for _, w := range r.emitted {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Total returns the number of emitted warnings
func (r *Reporter) Total() int { return len(r.emitted) }

// SuppressedCount returns how many warnings were silenced
func (r *Reporter) SuppressedCount() int {
	n := 0
	for _, c := range r.suppressed {
		n += c
	}
	return n
}
