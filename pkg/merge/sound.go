package merge

import (
	"github.com/craftec/rpbuilder/pkg/warnings"
)

func (m *Merger) mergeSound(dest string, data []byte) error {
	incoming, err := decodeObject(data)
	if err != nil {
		m.report(warnings.InvalidInput, dest, describeJSONError(err))
		return nil
	}

	t, err := m.soundTable(dest)
	if err != nil || t == nil {
		return err
	}
	for _, mem := range incoming {
		if t.set(mem.Key, mem.Value) {
			m.report(warnings.DuplicateSoundID, dest, mem.Key)
		}
	}
	return nil
}

func (m *Merger) soundTable(dest string) (*table, error) {
	if t, ok := m.state.sounds[dest]; ok {
		return t, nil
	}

	existing, err := m.readStaged(dest)
	if err != nil {
		return nil, err
	}

	t := newTable()
	if existing != nil {
		members, err := decodeObject(existing)
		if err != nil {
			m.report(warnings.InvalidInput, dest, "staged content: "+describeJSONError(err))
			return nil, nil
		}
		for _, mem := range members {
			t.set(mem.Key, mem.Value)
		}
	}
	m.state.sounds[dest] = t
	return t, nil
}
