// Package generator runs the batch: it joins the host command list with the
// documentation, synthesizes every command and renders the stub file.
package generator

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/cmdstub/docs"
	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/host"
	"github.com/teranos/cmdstub/logger"
	"github.com/teranos/cmdstub/stub"
	"github.com/teranos/cmdstub/synopsis"
	"github.com/teranos/cmdstub/synth"
	"github.com/teranos/cmdstub/typemap"
)

// DefaultFileName is used when the output path is a directory
const DefaultFileName = "cmds.pyi"

// Options are the generation switches
type Options struct {
	// Output is the stub path or an existing directory
	Output string
	// IncludeUndocumented emits commands that have no documentation page
	IncludeUndocumented bool
	// SequenceParams types bracketed argument lists as Sequence[...]
	SequenceParams bool
	// Strict aborts on the first malformed page instead of skipping it
	Strict bool
}

// Result summarizes one run
type Result struct {
	Version      string        `json:"version"`
	Output       string        `json:"output,omitempty"`
	Commands     int           `json:"commands"`
	Documented   int           `json:"documented"`
	Undocumented int           `json:"undocumented"`
	Obsolete     int           `json:"obsolete"`
	Signatures   int           `json:"signatures"`
	Skipped      []string      `json:"skipped,omitempty"`
	Malformed    []string      `json:"malformed,omitempty"`
	Unmapped     []string      `json:"unmapped,omitempty"`
	Duration     time.Duration `json:"duration_ns"`
}

// Generator produces the stub text from a host and a documentation source
type Generator struct {
	host     host.Introspector
	source   docs.Source
	mapper   *typemap.Mapper
	parser   *synopsis.Parser
	synth    *synth.Synthesizer
	opts     Options
	progress Progress
	log      *zap.SugaredLogger
}

// New creates a generator
func New(in host.Introspector, source docs.Source, mapper *typemap.Mapper, opts Options) *Generator {
	return &Generator{
		host:     in,
		source:   source,
		mapper:   mapper,
		parser:   synopsis.NewParser(mapper),
		synth:    synth.New(mapper, synth.Options{SequenceParams: opts.SequenceParams}),
		opts:     opts,
		progress: NopProgress{},
		log:      logger.ComponentLogger("generator"),
	}
}

// WithProgress sets the progress reporter
func (g *Generator) WithProgress(p Progress) *Generator {
	g.progress = p
	return g
}

// Generate builds the complete stub text
func (g *Generator) Generate(ctx context.Context) (string, *Result, error) {
	start := time.Now()
	res := &Result{}

	version, err := g.host.Version(ctx)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to read host version")
	}
	res.Version = version

	names, err := g.commandNames(ctx)
	if err != nil {
		return "", nil, err
	}
	g.progress.Stage("generate", "synthesizing commands")

	var commands []stub.Command
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return "", nil, errors.Wrap(err, "generation cancelled")
		}
		g.progress.Command(name, i+1, len(names))

		cmd, ok, err := g.command(ctx, name, res)
		if err != nil {
			return "", nil, err
		}
		if ok {
			commands = append(commands, cmd)
			res.Signatures += len(cmd.Functions)
		}
	}

	res.Commands = len(commands)
	res.Unmapped = g.mapper.Unmapped()
	res.Duration = time.Since(start)
	return stub.Render(stub.Header(version), commands), res, nil
}

// commandNames is the sorted union of host and documented commands
func (g *Generator) commandNames(ctx context.Context) ([]string, error) {
	hostNames, err := g.host.Commands(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list host commands")
	}
	g.progress.Stage("index", "loading documentation index")
	documented, err := g.source.Commands(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(hostNames)+len(documented))
	var names []string
	for _, n := range append(hostNames, documented...) {
		if n == "" || strings.HasPrefix(n, "_") || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (g *Generator) command(ctx context.Context, name string, res *Result) (stub.Command, bool, error) {
	log := logger.CommandLogger(g.log, name)

	page, found, err := g.source.Page(ctx, name)
	if err != nil {
		return stub.Command{}, false, err
	}

	var doc *docs.CommandDocumentation
	if found {
		doc, err = docs.ParseHTMLString(page)
		if err != nil {
			err = errors.Wrapf(err, "command %s", name)
			if g.opts.Strict || !errors.IsMalformedPageError(err) {
				return stub.Command{}, false, err
			}
			log.Warnw("Skipping command with malformed documentation", logger.FieldError, err)
			res.Malformed = append(res.Malformed, name)
			return stub.Command{}, false, nil
		}
		res.Documented++
	} else {
		if !g.opts.IncludeUndocumented {
			res.Skipped = append(res.Skipped, name)
			return stub.Command{}, false, nil
		}
		res.Undocumented++
	}

	if doc != nil && doc.Obsolete {
		res.Obsolete++
	}
	return g.Synthesize(name, doc, g.positional(ctx, log, name)), true, nil
}

// Synthesize turns one command's documentation and positional arguments
// into its declaration. doc may be nil for an undocumented command.
// Obsolete commands accept anything.
func (g *Generator) Synthesize(name string, doc *docs.CommandDocumentation, positional []stub.Argument) stub.Command {
	if doc != nil && doc.Obsolete {
		positional = []stub.Argument{stub.VarArgs(), stub.VarKwargs()}
	}

	cmd := stub.Command{
		Name:      name,
		Functions: g.synth.Functions(name, doc, positional),
	}
	if doc != nil {
		cmd.Docstring = stub.ComposeDocstring(doc)
	}
	return cmd
}

func (g *Generator) positional(ctx context.Context, log *zap.SugaredLogger, name string) []stub.Argument {
	help, err := g.host.Help(ctx, name)
	if err != nil {
		log.Debugw("No help text, accepting any positional arguments", logger.FieldError, err)
		return synopsis.UnknownArity()
	}
	return g.parser.Parse(name, help)
}

// Run generates the stub and writes it to the configured output
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	text, res, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}

	path, err := WriteStub(g.opts.Output, text)
	if err != nil {
		return nil, err
	}
	res.Output = path
	g.progress.Complete(res)
	return res, nil
}

// ResolveOutput returns the file written for output: an existing directory
// gets DefaultFileName appended
func ResolveOutput(output string) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, DefaultFileName)
	}
	return output
}

// WriteStub writes text to output, creating parent directories, and returns
// the path written
func WriteStub(output, text string) (string, error) {
	if output == "" {
		return "", errors.New("no output path")
	}
	path := ResolveOutput(output)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}
