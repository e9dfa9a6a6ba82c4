package merge

import (
	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/logging"
)

// Flush writes every accumulated lang table, font definition and sound table
// to the staging tree in sorted destination order
func (m *Merger) Flush() error {
	defer logging.LogOperationStart(m.logger, "flush merge state")()

	for _, dest := range m.state.Destinations() {
		data, err := m.render(dest)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to serialize %s", dest)
		}
		if err := m.writeStaged(dest, data); err != nil {
			return err
		}
		m.logger.Debug().Str("path", dest).Int("bytes", len(data)).Msg("Flushed merged file")
	}
	return nil
}

func (m *Merger) render(dest string) ([]byte, error) {
	if t, ok := m.state.lang[dest]; ok {
		return marshalPretty(t)
	}
	if def, ok := m.state.fonts[dest]; ok {
		return def.render()
	}
	return marshalPretty(m.state.sounds[dest])
}
