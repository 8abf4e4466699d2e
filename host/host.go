// Package host queries the live command API: the command list, the help
// text of each command and the application version.
package host

import (
	"context"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teranos/cmdstub/errors"
)

// Introspector reports what the running host exposes
type Introspector interface {
	// Commands lists the callable command names, sorted
	Commands(ctx context.Context) ([]string, error)
	// Help returns the help text of one command
	Help(ctx context.Context, command string) (string, error)
	// Version returns the host application version, e.g. "2025"
	Version(ctx context.Context) (string, error)
}

// Snapshot is a serialized dump of the host API.
// A null help entry records a command whose help query failed.
type Snapshot struct {
	Version  string             `yaml:"version"`
	Commands map[string]*string `yaml:"commands"`
}

// DecodeSnapshot parses a YAML snapshot
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "failed to decode host snapshot")
	}
	if snap.Version == "" {
		return nil, errors.WithHint(
			errors.New("host snapshot has no version"),
			"the dump must contain a top-level 'version' key")
	}
	return &snap, nil
}

// snapshotIntrospector answers from an in-memory snapshot
type snapshotIntrospector struct {
	snap *Snapshot
}

func (s *snapshotIntrospector) Commands(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.snap.Commands))
	for name := range s.snap.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *snapshotIntrospector) Help(ctx context.Context, command string) (string, error) {
	help, ok := s.snap.Commands[command]
	if !ok {
		return "", errors.Wrapf(errors.ErrNotFound, "command %s", command)
	}
	if help == nil {
		return "", errors.Newf("help unavailable for %s", command)
	}
	return *help, nil
}

func (s *snapshotIntrospector) Version(ctx context.Context) (string, error) {
	return s.snap.Version, nil
}

// Options selects and configures the introspection backend
type Options struct {
	// Snapshot is a YAML dump file; wins over Command
	Snapshot string
	// Command is a command line that prints a YAML dump on stdout
	Command string
	Timeout time.Duration
}
