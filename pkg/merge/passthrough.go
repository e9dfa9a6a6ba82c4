package merge

import (
	"github.com/craftec/rpbuilder/pkg/warnings"
	"github.com/minio/highwayhash"
)

// fingerprintKey is the fixed HighwayHash key used to compare file contents
var fingerprintKey = []byte("rpbuilder-staging-fingerprint-01")

// Fingerprint returns a 64-bit content hash of data
func Fingerprint(data []byte) uint64 {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		panic(err)
	}
	_, _ = h.Write(data)
	return h.Sum64()
}

func (m *Merger) copyFile(dest string, data []byte) error {
	existing, err := m.readStaged(dest)
	if err != nil {
		return err
	}
	if existing != nil {
		detail := "overwriting"
		if Fingerprint(existing) == Fingerprint(data) {
			detail = "overwriting with identical content"
		}
		m.report(warnings.DuplicateFile, dest, detail)
	}
	return m.writeStaged(dest, data)
}
