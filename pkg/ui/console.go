package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/ui/styles"
	"github.com/craftec/rpbuilder/pkg/warnings"
)

// MsgSuccess is the final line of a successful build
const MsgSuccess = "Successfully built %s!"

// Summary describes a finished build for display
type Summary struct {
	Archive    string   `json:"archive"`
	Entries    int      `json:"entries"`
	Sources    int      `json:"sources"`
	Merged     []string `json:"merged"`
	MirroredTo string   `json:"mirroredTo,omitempty"`
	Warnings   int      `json:"warnings"`
	Suppressed int      `json:"suppressed"`
}

// Console writes build events in a single format. It satisfies
// warnings.Sink and build.Progress.
type Console struct {
	out    io.Writer
	err    io.Writer
	format Format
	styles styles.Registry
}

// NewConsole creates a console writing events to out and errors to errOut.
// FormatAuto is resolved against out.
func NewConsole(out, errOut io.Writer, format Format) *Console {
	c := &Console{
		out:    out,
		err:    errOut,
		format: Resolve(format, out),
	}
	if c.format == FormatTerminal {
		c.styles = styles.Default()
	}
	return c
}

// Format returns the resolved output format
func (c *Console) Format() Format { return c.format }

// Step prints one progress line
func (c *Console) Step(message string) {
	switch c.format {
	case FormatJSON:
		c.event(c.out, "step", map[string]interface{}{"message": message})
	default:
		c.line(c.out, c.render("Step", message))
	}
}

// Emit prints one warning line
func (c *Console) Emit(w warnings.Warning) {
	switch c.format {
	case FormatJSON:
		fields := map[string]interface{}{
			"kind":       w.Kind.String(),
			"identifier": w.Identifier,
			"message":    w.Message(),
		}
		if w.Detail != "" {
			fields["detail"] = w.Detail
		}
		c.event(c.out, "warning", fields)
	case FormatTerminal:
		var b strings.Builder
		b.WriteString(c.styles.Get("WarningTag").Render(strings.TrimSpace(warnings.Tag)))
		b.WriteString(" ")
		b.WriteString(c.styles.Get("WarningText").Render(w.Kind.Prefix()))
		b.WriteString(c.styles.Get("FilePath").Render(w.Identifier))
		if w.Detail != "" {
			b.WriteString(" ")
			b.WriteString(c.styles.Get("Detail").Render(w.Detail))
		}
		c.line(c.out, b.String())
	default:
		c.line(c.out, w.String())
	}
}

// Summary prints the build statistics. Plain text output stays silent so
// the classic step and success lines are all a script sees.
func (c *Console) Summary(s Summary) {
	switch c.format {
	case FormatJSON:
		if s.Merged == nil {
			s.Merged = []string{}
		}
		c.event(c.out, "summary", map[string]interface{}{"summary": s})
	case FormatTerminal:
		label := c.styles.Get("SummaryLabel")
		value := c.styles.Get("SummaryValue")
		rows := [][2]string{
			{"archive", s.Archive},
			{"entries", fmt.Sprint(s.Entries)},
			{"sources", fmt.Sprint(s.Sources)},
			{"merged", fmt.Sprint(len(s.Merged))},
			{"warnings", fmt.Sprintf("%d (%d suppressed)", s.Warnings, s.Suppressed)},
		}
		if s.MirroredTo != "" {
			rows = append(rows, [2]string{"mirrored", s.MirroredTo})
		}
		c.line(c.out, "")
		for _, row := range rows {
			c.line(c.out, label.Render(row[0])+value.Render(row[1]))
		}
	}
}

// Success prints the final line of a successful build
func (c *Console) Success(archive string) {
	msg := fmt.Sprintf(MsgSuccess, archive)
	switch c.format {
	case FormatJSON:
		c.event(c.out, "success", map[string]interface{}{"archive": archive, "message": msg})
	default:
		c.line(c.out, "")
		c.line(c.out, c.render("Success", msg))
	}
}

// Error prints a fatal error to the error writer
func (c *Console) Error(err error) {
	if err == nil {
		return
	}
	switch c.format {
	case FormatJSON:
		fields := map[string]interface{}{"message": err.Error()}
		if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
			fields["code"] = string(code)
		}
		c.event(c.err, "error", fields)
	default:
		c.line(c.err, c.render("Error", "Error:")+" "+err.Error())
	}
}

func (c *Console) render(style, s string) string {
	if c.format != FormatTerminal {
		return s
	}
	return c.styles.Get(style).Render(s)
}

func (c *Console) line(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}

func (c *Console) event(w io.Writer, name string, fields map[string]interface{}) {
	fields["event"] = name
	data, err := json.Marshal(fields)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(w, string(data))
}
