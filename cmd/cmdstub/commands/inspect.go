package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/cmdstub/docs"
	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/generator"
	"github.com/teranos/cmdstub/synopsis"
	"github.com/teranos/cmdstub/typemap"
)

// InspectCmd prints the declaration for a single command
var InspectCmd = &cobra.Command{
	Use:   "inspect <command>",
	Short: "Print the stub declaration for one command",
	Long: `Print the declaration generated for one command without a host.

The documentation comes from a saved reference page and the positional
arguments from a synopsis line as the host's help prints it. Without
--synopsis the command accepts any positional arguments; without --html it
is treated as undocumented.

Examples:
  cmdstub inspect polyCube --html polyCube.html
  cmdstub inspect ls --html ls.html --synopsis "ls [flags] [String...]"`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

type inspectOptions struct {
	Command        string
	HTML           string
	Synopsis       string
	Overrides      string
	SequenceParams bool
}

var inspectOpts inspectOptions

func init() {
	InspectCmd.Flags().StringVar(&inspectOpts.HTML, "html", "", "Saved documentation page")
	InspectCmd.Flags().StringVar(&inspectOpts.Synopsis, "synopsis", "", "Synopsis line from the command's help")
	InspectCmd.Flags().StringVar(&inspectOpts.Overrides, "overrides", "", "Directory of override tables (default: built-in tables)")
	InspectCmd.Flags().BoolVar(&inspectOpts.SequenceParams, "sequence-params", false, "Type bracketed arguments as Sequence[...]")
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts := inspectOpts
	opts.Command = args[0]
	return inspect(cmd.OutOrStdout(), opts)
}

func inspect(w io.Writer, opts inspectOptions) error {
	tables, err := typemap.LoadTables(opts.Overrides)
	if err != nil {
		return err
	}
	mapper := typemap.NewMapper(tables)

	var doc *docs.CommandDocumentation
	if opts.HTML != "" {
		f, err := os.Open(opts.HTML)
		if err != nil {
			return errors.Wrapf(err, "failed to open %s", opts.HTML)
		}
		defer f.Close()
		if doc, err = docs.ParseHTML(f); err != nil {
			return errors.Wrapf(err, "command %s", opts.Command)
		}
	}

	positional := synopsis.UnknownArity()
	if line := strings.TrimSpace(opts.Synopsis); line != "" {
		if !strings.HasPrefix(line, "Synopsis:") {
			line = "Synopsis: " + line
		}
		positional = synopsis.NewParser(mapper).Parse(opts.Command, line)
	}

	g := generator.New(nil, nil, mapper, generator.Options{SequenceParams: opts.SequenceParams})
	_, err = fmt.Fprintln(w, g.Synthesize(opts.Command, doc, positional).String())
	return err
}
