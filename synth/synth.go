// Package synth expands a command's documentation into the family of
// overloaded call signatures emitted for it.
package synth

import (
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/cmdstub/docs"
	"github.com/teranos/cmdstub/logger"
	"github.com/teranos/cmdstub/stub"
	"github.com/teranos/cmdstub/typemap"
)

const queryModeMarker = "In query mode"

// Options tune how arguments are typed
type Options struct {
	// SequenceParams types bracketed argument lists as Sequence[...]
	// instead of fixed tuples
	SequenceParams bool
}

// Synthesizer builds signatures from parsed documentation
type Synthesizer struct {
	mapper  *typemap.Mapper
	tables  *typemap.Tables
	argMode typemap.Mode
	log     *zap.SugaredLogger
}

// New creates a synthesizer using the mapper and its override tables
func New(mapper *typemap.Mapper, opts Options) *Synthesizer {
	return &Synthesizer{
		mapper:  mapper,
		tables:  mapper.Tables(),
		argMode: typemap.Mode{Tuples: !opts.SequenceParams},
		log:     logger.ComponentLogger("synth"),
	}
}

// Functions returns the signatures of command name. doc may be nil for
// undocumented commands; positional comes from the synopsis.
func (s *Synthesizer) Functions(name string, doc *docs.CommandDocumentation, positional []stub.Argument) []stub.Function {
	if doc == nil {
		ret := typemap.Any
		if isUpper(name) {
			ret = typemap.None
		}
		return []stub.Function{{Name: name, Positional: positional, ReturnType: ret}}
	}

	if doc.Obsolete {
		return []stub.Function{{
			Name:               name,
			Positional:         positional,
			Deprecated:         true,
			DeprecationMessage: doc.ObsoleteMessage,
		}}
	}

	var fns []stub.Function
	fns = append(fns, s.create(name, doc, positional)...)
	fns = append(fns, s.edit(name, doc, positional)...)
	fns = append(fns, s.query(name, doc, positional)...)

	if logger.ShouldOutput(logger.Verbosity, logger.OutputSynthesis) {
		s.log.Debugw("Synthesized signatures", logger.FieldCommand, name, logger.FieldCount, len(fns))
	}
	return fns
}

// isUpper matches Python's str.isupper: at least one cased letter and no
// lowercase ones
func isUpper(name string) bool {
	return strings.ToUpper(name) == name && strings.ToLower(name) != name
}

func (s *Synthesizer) flagArg(f docs.Flag) stub.Argument {
	arg := stub.Argument{Name: f.NameLong, Default: stub.Elided}
	if f.ArgType != "" {
		arg.Type = s.mapper.Map(f.ArgType, s.argMode)
	}
	if f.MultiUse {
		t := arg.Type
		if t == "" {
			t = typemap.Any
		}
		arg.Type = "multiuse[" + t + "]"
	}
	return arg
}

func (s *Synthesizer) flagArgs(flags []docs.Flag) []stub.Argument {
	args := make([]stub.Argument, 0, len(flags))
	for _, f := range flags {
		args = append(args, s.flagArg(f))
	}
	return args
}

func (s *Synthesizer) create(name string, doc *docs.CommandDocumentation, positional []stub.Argument) []stub.Function {
	var returns []string
	for _, rv := range doc.Returns {
		returns = append(returns, typemap.SplitUnion(s.mapper.Map(rv.Type, typemap.ReturnMode))...)
	}
	if len(returns) == 0 {
		returns = []string{typemap.Any}
	}

	general := stub.Function{Name: name, Positional: positional}
	var split []stub.Function

	overrides := s.tables.CreateReturnTypes(name)
	if len(overrides) > 0 {
		excluded := make(map[string]bool)
		for _, expr := range overrides {
			for _, member := range typemap.SplitUnion(expr) {
				excluded[member] = true
			}
		}
		var kept []string
		for _, r := range returns {
			if !excluded[r] {
				kept = append(kept, r)
			}
		}
		returns = kept
	}

	for _, f := range doc.CreateFlags() {
		arg := s.flagArg(f)
		if ret, ok := s.tables.CreateReturn(name, f.NameLong); ok {
			arg.Default = ""
			split = append(split, stub.Function{
				Name:       name,
				Positional: positional,
				Keyword:    []stub.Argument{arg},
				ReturnType: ret,
			})
			continue
		}
		general.Keyword = append(general.Keyword, arg)
	}

	general.ReturnType = typemap.JoinUnion(returns)
	return append([]stub.Function{general}, split...)
}

func (s *Synthesizer) edit(name string, doc *docs.CommandDocumentation, positional []stub.Argument) []stub.Function {
	if !doc.Editable {
		return nil
	}
	keyword := []stub.Argument{{Name: "edit", Type: typemap.LiteralTrue}}
	keyword = append(keyword, s.flagArgs(doc.EditFlags())...)
	return []stub.Function{{Name: name, Positional: positional, Keyword: keyword}}
}

func (s *Synthesizer) query(name string, doc *docs.CommandDocumentation, positional []stub.Argument) []stub.Function {
	if !doc.Queryable {
		return nil
	}

	var generalModifiers []docs.Flag
	for _, f := range doc.Flags {
		if !f.Query && strings.Contains(f.Description, queryModeMarker) {
			generalModifiers = append(generalModifiers, f)
		}
	}
	generalArgs := s.flagArgs(generalModifiers)
	queryArg := stub.Argument{Name: "query", Type: typemap.LiteralTrue}

	fns := []stub.Function{{
		Name:       name,
		Positional: positional,
		Keyword:    append([]stub.Argument{queryArg}, generalArgs...),
		ReturnType: typemap.Any,
	}}

	queryFlags := doc.QueryFlags()
	for _, f := range queryFlags {
		if s.tables.IsQueryModifier(name, f.NameLong) {
			continue
		}

		keyword := []stub.Argument{queryArg, {Name: f.NameLong, Type: typemap.LiteralTrue}}
		for _, m := range queryFlags {
			if s.tables.Modifies(name, m.NameLong, f.NameLong) {
				keyword = append(keyword, s.flagArg(m))
			}
		}
		keyword = append(keyword, generalArgs...)

		fns = append(fns, stub.Function{
			Name:       name,
			Positional: positional,
			Keyword:    keyword,
			ReturnType: s.queryReturn(name, f),
		})
	}
	return fns
}

func (s *Synthesizer) queryReturn(command string, f docs.Flag) string {
	if ret, ok := s.tables.QueryReturn(command, f.NameLong); ok {
		return ret
	}
	// the declared type of a query-only flag describes the toggle
	if f.IsQueryOnly() || f.ArgType == "" {
		return typemap.Any
	}

	ret := s.mapper.Map(f.ArgType, typemap.ReturnMode)
	if ret == "bool" {
		desc := strings.ToLower(f.Description)
		if strings.Contains(desc, "query") || strings.Contains(desc, "queried") {
			return typemap.Any
		}
	}
	return ret
}
