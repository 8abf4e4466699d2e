package host

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/logger"
)

// ProcessIntrospector starts the host in batch mode through a dump command
// and answers from the YAML it prints
type ProcessIntrospector struct {
	snapshotIntrospector
	argv []string
}

// StartProcess runs the dump command line and decodes its stdout.
// The process is bounded by timeout when it is positive.
func StartProcess(ctx context.Context, commandLine string, timeout time.Duration) (*ProcessIntrospector, error) {
	log := logger.ComponentLogger("host")

	argv, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid host.command %q", commandLine)
	}
	if len(argv) == 0 {
		return nil, errors.WithHint(errors.Wrap(errors.ErrHostUnavailable, "empty host.command"),
			"set host.command or host.snapshot")
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stdout, err := run(ctx, log, argv)
	if err != nil {
		return nil, err
	}

	snap, err := DecodeSnapshot(stdout)
	if err != nil {
		return nil, errors.Wrapf(err, "output of %s", argv[0])
	}
	log.Infow("Host introspected",
		logger.FieldVersion, snap.Version,
		logger.FieldCount, len(snap.Commands))
	return &ProcessIntrospector{snapshotIntrospector{snap: snap}, argv}, nil
}

func run(ctx context.Context, log *zap.SugaredLogger, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	log.Debugw("Starting host", "argv", argv)
	err := cmd.Run()
	log.Debugw("Host exited", logger.FieldDurationMS, time.Since(start).Milliseconds())

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrHostUnavailable, "%s timed out", argv[0]),
				"raise host.timeout_seconds")
		}
		detail := strings.TrimSpace(stderr.String())
		return nil, errors.WithDetail(
			errors.Wrapf(errors.ErrHostUnavailable, "%s failed: %v", argv[0], err),
			detail)
	}
	return stdout.Bytes(), nil
}

// Argv returns the split dump command
func (p *ProcessIntrospector) Argv() []string {
	return p.argv
}
