package host

import (
	"os"

	"github.com/teranos/cmdstub/errors"
)

// SnapshotIntrospector reads a YAML snapshot written by a previous host dump
type SnapshotIntrospector struct {
	snapshotIntrospector
	path string
}

// LoadSnapshot reads the snapshot file at path
func LoadSnapshot(path string) (*SnapshotIntrospector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrHostUnavailable, "read snapshot %s: %v", path, err),
			"check host.snapshot")
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", path)
	}
	return &SnapshotIntrospector{snapshotIntrospector{snap: snap}, path}, nil
}

// Path returns the file the snapshot was read from
func (s *SnapshotIntrospector) Path() string {
	return s.path
}
