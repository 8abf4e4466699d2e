package host

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/logger"
)

// Session scopes access to the host runtime. Close must be called on every
// path once Open succeeds; it is safe to call more than once.
type Session struct {
	Introspector
	log *zap.SugaredLogger

	closeOnce sync.Once
	release   func() error
	closeErr  error
}

// Open acquires the host described by opts
func Open(ctx context.Context, opts Options) (*Session, error) {
	var in Introspector
	var err error
	switch {
	case opts.Snapshot != "":
		in, err = LoadSnapshot(opts.Snapshot)
	case opts.Command != "":
		in, err = StartProcess(ctx, opts.Command, opts.Timeout)
	default:
		err = errors.WithHint(
			errors.Wrap(errors.ErrHostUnavailable, "no host configured"),
			"set host.snapshot to a YAML dump or host.command to a dump command")
	}
	if err != nil {
		return nil, err
	}

	return NewSession(in, nil), nil
}

// NewSession wraps an introspector; release runs once on Close
func NewSession(in Introspector, release func() error) *Session {
	return &Session{
		Introspector: in,
		log:          logger.ComponentLogger("host"),
		release:      release,
	}
}

// Close releases the host
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.release != nil {
			s.closeErr = s.release()
		}
		s.log.Debugw("Host session closed")
	})
	return s.closeErr
}
