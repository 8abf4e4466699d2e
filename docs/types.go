// Package docs extracts structured command documentation from the HTML
// command reference and provides the sources those pages are read from.
package docs

// ObsoleteFallback is used when an obsolete page carries no explanation
const ObsoleteFallback = "This command is obsolete."

// Flag is one documented option of a command
type Flag struct {
	NameLong  string `json:"name_long" yaml:"name_long"`
	NameShort string `json:"name_short" yaml:"name_short"`
	// ArgType is the raw type token; empty for pure boolean toggles
	ArgType     string `json:"arg_type,omitempty" yaml:"arg_type,omitempty"`
	Description string `json:"description" yaml:"description"`
	Query       bool   `json:"query" yaml:"query"`
	Edit        bool   `json:"edit" yaml:"edit"`
	Create      bool   `json:"create" yaml:"create"`
	MultiUse    bool   `json:"multi_use" yaml:"multi_use"`
}

// IsQueryOnly reports whether the flag is valid only in query mode. The
// declared type of such a flag describes the toggle, not the queried value.
func (f Flag) IsQueryOnly() bool {
	return f.Query && !f.Edit && !f.Create
}

// ReturnValue is one entry of a command's Return section
type ReturnValue struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

// CommandDocumentation is the parsed reference page of one command
type CommandDocumentation struct {
	Undoable    bool          `json:"undoable" yaml:"undoable"`
	Queryable   bool          `json:"queryable" yaml:"queryable"`
	Editable    bool          `json:"editable" yaml:"editable"`
	Description string        `json:"description" yaml:"description"`
	Returns     []ReturnValue `json:"returns" yaml:"returns"`
	Flags       []Flag        `json:"flags" yaml:"flags"`
	// Examples is empty when the page has none
	Examples string `json:"examples,omitempty" yaml:"examples,omitempty"`
	Obsolete bool   `json:"obsolete" yaml:"obsolete"`
	// ObsoleteMessage is non-empty whenever Obsolete is set
	ObsoleteMessage string `json:"obsolete_message,omitempty" yaml:"obsolete_message,omitempty"`
}

// CreateFlags returns the create-mode flags in declaration order
func (d *CommandDocumentation) CreateFlags() []Flag {
	return d.filter(func(f Flag) bool { return f.Create })
}

// EditFlags returns the edit-mode flags in declaration order
func (d *CommandDocumentation) EditFlags() []Flag {
	return d.filter(func(f Flag) bool { return f.Edit })
}

// QueryFlags returns the query-mode flags in declaration order
func (d *CommandDocumentation) QueryFlags() []Flag {
	return d.filter(func(f Flag) bool { return f.Query })
}

func (d *CommandDocumentation) filter(keep func(Flag) bool) []Flag {
	var out []Flag
	for _, f := range d.Flags {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
