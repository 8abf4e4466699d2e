package generator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/cmdstub/logger"
)

// Progress receives generation events.
//
// Implementations include:
//   - CLIProgress: terminal progress bar and summary table using pterm
//   - JSONProgress: one JSON event per line for tooling
type Progress interface {
	Stage(stage, message string)
	Command(name string, done, total int)
	Complete(res *Result)
}

// NopProgress discards every event
type NopProgress struct{}

func (NopProgress) Stage(string, string)     {}
func (NopProgress) Command(string, int, int) {}
func (NopProgress) Complete(*Result)         {}

// CLIProgress renders progress for a terminal
type CLIProgress struct {
	out       io.Writer
	verbosity int
	bar       *pterm.ProgressbarPrinter
}

// NewCLIProgress creates a terminal reporter writing to out
func NewCLIProgress(out io.Writer, verbosity int) *CLIProgress {
	return &CLIProgress{out: out, verbosity: verbosity}
}

// Stage announces a stage at -v and above
func (p *CLIProgress) Stage(stage, message string) {
	if logger.ShouldOutput(p.verbosity, logger.OutputProgress) {
		pterm.Fprintln(p.out, pterm.Info.Sprintf("%s: %s", pterm.LightCyan(stage), message))
	}
}

// Command advances the progress bar
func (p *CLIProgress) Command(name string, done, total int) {
	if !logger.ShouldOutput(p.verbosity, logger.OutputProgress) {
		return
	}
	if p.bar == nil {
		p.bar, _ = pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("Commands").
			WithWriter(p.out).
			Start()
		if p.bar == nil {
			return
		}
	}
	p.bar.UpdateTitle(name)
	p.bar.Increment()
	if done == total {
		_, _ = p.bar.Stop()
		p.bar = nil
	}
}

// Complete prints the summary
func (p *CLIProgress) Complete(res *Result) {
	if !logger.ShouldOutput(p.verbosity, logger.OutputSummary) {
		return
	}
	pterm.Fprintln(p.out, pterm.Success.Sprintf("Wrote %s", res.Output))
	PrintSummary(p.out, res, p.verbosity)
}

// PrintSummary renders the run summary table; skipped command names are
// listed at -v and above
func PrintSummary(w io.Writer, res *Result, verbosity int) {
	data := pterm.TableData{
		{"Host version", res.Version},
		{"Commands", fmt.Sprint(res.Commands)},
		{"Signatures", fmt.Sprint(res.Signatures)},
		{"Documented", fmt.Sprint(res.Documented)},
		{"Undocumented", fmt.Sprint(res.Undocumented)},
		{"Obsolete", fmt.Sprint(res.Obsolete)},
		{"Skipped", fmt.Sprint(len(res.Skipped))},
		{"Malformed", fmt.Sprint(len(res.Malformed))},
		{"Unmapped types", fmt.Sprint(len(res.Unmapped))},
		{"Duration", res.Duration.Round(time.Millisecond).String()},
	}
	table, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return
	}
	pterm.Fprintln(w, table)

	if len(res.Malformed) > 0 {
		pterm.Fprintln(w, pterm.Warning.Sprintf("Malformed documentation: %s", strings.Join(res.Malformed, ", ")))
	}
	if len(res.Unmapped) > 0 {
		pterm.Fprintln(w, pterm.Warning.Sprintf("Unmapped type tokens: %s", strings.Join(res.Unmapped, ", ")))
	}
	if logger.ShouldOutput(verbosity, logger.OutputSkipped) && len(res.Skipped) > 0 {
		pterm.Fprintln(w, pterm.Info.Sprintf("Undocumented, not emitted: %s", strings.Join(res.Skipped, ", ")))
	}
}

// Event is one structured progress record
type Event struct {
	Type      string         `json:"type"` // "stage", "command", "complete"
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// JSONProgress writes newline-delimited JSON events
type JSONProgress struct {
	encoder *json.Encoder
}

// NewJSONProgress creates a JSON reporter writing to w
func NewJSONProgress(w io.Writer) *JSONProgress {
	return &JSONProgress{encoder: json.NewEncoder(w)}
}

func (p *JSONProgress) emit(typ string, data map[string]any) {
	_ = p.encoder.Encode(Event{Type: typ, Timestamp: time.Now(), Data: data})
}

// Stage emits a stage event
func (p *JSONProgress) Stage(stage, message string) {
	p.emit("stage", map[string]any{"stage": stage, "message": message})
}

// Command emits a command event
func (p *JSONProgress) Command(name string, done, total int) {
	p.emit("command", map[string]any{"command": name, "done": done, "total": total})
}

// Complete emits the result
func (p *JSONProgress) Complete(res *Result) {
	p.emit("complete", map[string]any{"result": res})
}
