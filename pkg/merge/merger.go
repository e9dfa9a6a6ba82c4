package merge

import (
	"os"
	"path"
	"strings"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/craftec/rpbuilder/pkg/warnings"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Reporter receives non-fatal merge conflicts
type Reporter interface {
	Report(kind warnings.Kind, identifier string, detail ...string)
}

// Merger routes ingested files into the staging tree and the merge state
type Merger struct {
	layout   Layout
	state    *State
	staging  afero.Fs
	reporter Reporter
	logger   zerolog.Logger
}

// NewMerger creates a merger writing into staging. The staging filesystem is
// rooted at the pack root.
func NewMerger(layout Layout, state *State, staging afero.Fs, reporter Reporter) *Merger {
	if state == nil {
		state = NewState()
	}
	return &Merger{
		layout:   layout,
		state:    state,
		staging:  staging,
		reporter: reporter,
		logger:   logging.GetLogger("merge"),
	}
}

// State returns the accumulators the merger writes to
func (m *Merger) State() *State {
	return m.state
}

// Route returns the strategy Ingest would use for dest right now
func (m *Merger) Route(dest string) Strategy {
	dest = cleanDest(dest)
	strategy := m.layout.classify(dest)
	switch strategy {
	case Font, Sound:
		if !m.state.Tracked(dest) && !m.staged(dest) {
			return Passthrough
		}
	}
	return strategy
}

// Ingest processes one file. Only staging write failures are returned;
// malformed payloads and conflicts go to the reporter.
func (m *Merger) Ingest(dest string, data []byte) error {
	dest = cleanDest(dest)
	strategy := m.Route(dest)
	m.logger.Trace().Str("path", dest).Str("strategy", strategy.String()).Msg("Routing file")

	switch strategy {
	case Excluded:
		return nil
	case Lang:
		return m.mergeLang(dest, data)
	case Font:
		return m.mergeFont(dest, data)
	case Sound:
		return m.mergeSound(dest, data)
	default:
		return m.copyFile(dest, data)
	}
}

func (m *Merger) staged(dest string) bool {
	exists, err := afero.Exists(m.staging, dest)
	return err == nil && exists
}

// readStaged returns the bytes currently staged at dest, or nil when nothing is
func (m *Merger) readStaged(dest string) ([]byte, error) {
	data, err := afero.ReadFile(m.staging, dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrStagingRead, "failed to read staged file %s", dest)
	}
	return data, nil
}

func (m *Merger) writeStaged(dest string, data []byte) error {
	if dir := path.Dir(dest); dir != "." {
		if err := m.staging.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrStagingWrite, "failed to create directory %s", dir)
		}
	}
	if err := afero.WriteFile(m.staging, dest, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStagingWrite, "failed to write %s", dest)
	}
	return nil
}

func (m *Merger) report(kind warnings.Kind, identifier string, detail ...string) {
	if m.reporter != nil {
		m.reporter.Report(kind, identifier, detail...)
	}
}

func cleanDest(p string) string {
	p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	return p
}
