// Package stub models synthesized call signatures and renders them as a
// Python type-stub file.
package stub

import (
	"strings"
)

// Elided is the placeholder default for a value that is optional but whose
// literal default is unknown.
const Elided = "..."

// Kind distinguishes fixed parameters from the variadic forms
type Kind int

const (
	Positional    Kind = iota
	VarPositional      // *args
	VarKeyword         // **kwargs
)

// Argument is one formal parameter of a signature
type Argument struct {
	Name string
	// Type is the type expression; empty means untyped
	Type string
	// Default is the default literal; empty means required
	Default string
	Kind    Kind
}

// VarArgs returns the untyped "*args" argument
func VarArgs() Argument {
	return Argument{Name: "args", Kind: VarPositional}
}

// VarKwargs returns the untyped "**kwargs" argument
func VarKwargs() Argument {
	return Argument{Name: "kwargs", Kind: VarKeyword}
}

// IsVariadic reports whether the argument is *args or **kwargs
func (a Argument) IsVariadic() bool {
	return a.Kind != Positional
}

// String renders name[:type][=default]
func (a Argument) String() string {
	var sb strings.Builder
	switch a.Kind {
	case VarPositional:
		sb.WriteString("*")
	case VarKeyword:
		sb.WriteString("**")
	}
	sb.WriteString(toPythonIdent(a.Name))
	if a.Type != "" {
		sb.WriteString(":")
		sb.WriteString(a.Type)
	}
	if a.Default != "" {
		sb.WriteString("=")
		sb.WriteString(a.Default)
	}
	return sb.String()
}

// Function is one concrete signature of a command
type Function struct {
	Name       string
	Positional []Argument
	// Keyword arguments in declaration order
	Keyword []Argument
	// ReturnType is emitted as Any when empty
	ReturnType         string
	Deprecated         bool
	DeprecationMessage string
}

// HasKeyword reports whether the function declares the keyword argument
func (f Function) HasKeyword(name string) bool {
	for _, arg := range f.Keyword {
		if arg.Name == name {
			return true
		}
	}
	return false
}

// Command is a named family of signatures with shared documentation
type Command struct {
	Name      string
	Docstring string
	Functions []Function
}

// pythonKeywords are reserved words that cannot be used as parameter names.
// Soft keywords (match, case, type) are valid identifiers and left alone.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// toPythonIdent adds an underscore suffix to Python keywords
func toPythonIdent(s string) string {
	if pythonKeywords[s] {
		return s + "_"
	}
	return s
}
