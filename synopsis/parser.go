// Package synopsis infers positional parameters from the one-line
// "Synopsis:" grammar reported by the live API's help.
package synopsis

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/cmdstub/logger"
	"github.com/teranos/cmdstub/stub"
	"github.com/teranos/cmdstub/typemap"
)

const (
	linePrefix = "Synopsis:"
	repeated   = "..."
	// bracket grouping is decoration; nesting deeper than this is a failure
	maxBracketPasses = 5
)

var (
	prefixPattern   = regexp.MustCompile(`^Synopsis: \w+(?: \[flags\])?`)
	bracketPattern  = regexp.MustCompile(`\[([A-Za-z. ]+)\]`)
	commentPattern  = regexp.MustCompile(`\([^)]*\)`)
	builtinTypeName = map[string]bool{"str": true, "int": true, "float": true, "bool": true}
)

// TypeLookup is the strict dictionary lookup used to type parameters
type TypeLookup interface {
	Lookup(token string) (string, bool)
}

// Parser turns help text into positional arguments
type Parser struct {
	types TypeLookup
	log   *zap.SugaredLogger
}

// NewParser creates a parser typing parameters through types
func NewParser(types TypeLookup) *Parser {
	return &Parser{
		types: types,
		log:   logger.ComponentLogger("synopsis"),
	}
}

// UnknownArity is the fallback signature: a single untyped *args
func UnknownArity() []stub.Argument {
	return []stub.Argument{stub.VarArgs()}
}

// Parse finds the Synopsis line in help and returns the positional
// arguments it describes. Help without a synopsis yields UnknownArity.
func (p *Parser) Parse(command, help string) []stub.Argument {
	for _, line := range strings.Split(help, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, linePrefix) {
			return p.ParseLine(command, line)
		}
	}
	return UnknownArity()
}

// ParseLine parses a single "Synopsis: <cmd> [flags] <grammar>" line
func (p *Parser) ParseLine(command, line string) []stub.Argument {
	log := logger.CommandLogger(p.log, command)

	grammar := strings.ToLower(strings.TrimSpace(prefixPattern.ReplaceAllString(line, "")))
	if grammar == "" {
		return []stub.Argument{}
	}

	if strings.Contains(grammar, "(") {
		log.Warnw("Removing parenthesised comment from synopsis", "synopsis", grammar)
		grammar = strings.TrimSpace(commentPattern.ReplaceAllString(grammar, ""))
	}

	// Name[...] means a name followed by anything
	grammar = strings.ReplaceAll(grammar, "[...]", " any...")

	raw := grammar
	for pass := 0; strings.Contains(grammar, "["); pass++ {
		if pass == maxBracketPasses {
			log.Warnw("Could not remove brackets from synopsis", "synopsis", raw)
			return UnknownArity()
		}
		grammar = strings.TrimSpace(bracketPattern.ReplaceAllString(grammar, "$1"))
	}

	tokens := strings.Fields(grammar)
	switch {
	case len(tokens) == 0:
		return []stub.Argument{}
	case len(tokens) == 1:
		if args, ok := p.single(tokens[0]); ok {
			return args
		}
	case !strings.Contains(grammar, repeated):
		return p.fixed(log, tokens)
	default:
		if args, ok := p.mixed(log, tokens); ok {
			return args
		}
	}

	log.Warnw("Could not determine positional arguments", "synopsis", grammar)
	return UnknownArity()
}

// single handles "string" and "string..."
func (p *Parser) single(token string) ([]stub.Argument, bool) {
	if t, ok := p.lookup(token); ok {
		return []stub.Argument{{Name: "arg", Type: t, Default: stub.Elided}}, true
	}
	if base, ok := strings.CutSuffix(token, repeated); ok {
		if t, ok := p.lookup(base); ok {
			return []stub.Argument{{Name: "args", Type: repeatable(t), Kind: stub.VarPositional}}, true
		}
	}
	return nil, false
}

// fixed handles "string int float": one parameter per token
func (p *Parser) fixed(log *zap.SugaredLogger, tokens []string) []stub.Argument {
	args := make([]stub.Argument, 0, len(tokens))
	for i, token := range tokens {
		t, ok := p.lookup(token)
		if !ok {
			log.Warnw("Unknown positional argument type", logger.FieldToken, token)
		}
		args = append(args, stub.Argument{Name: argName(i), Type: t, Default: stub.Elided})
	}
	return args
}

// mixed handles "name any...": fixed tokens first, repeated ones folded
// into a trailing *args
func (p *Parser) mixed(log *zap.SugaredLogger, tokens []string) ([]stub.Argument, bool) {
	var singles, repeats []string
	for _, token := range tokens {
		t, ok := p.lookup(strings.Trim(token, "."))
		if !ok {
			log.Warnw("Unknown positional argument type", logger.FieldToken, token)
			return nil, false
		}
		if strings.HasSuffix(token, repeated) {
			repeats = append(repeats, t)
		} else {
			singles = append(singles, t)
		}
	}

	args := make([]stub.Argument, 0, len(singles)+1)
	for i, t := range singles {
		args = append(args, stub.Argument{Name: argName(i), Type: t, Default: stub.Elided})
	}
	if len(repeats) > 0 {
		args = append(args, stub.Argument{Name: "args", Type: repeatable(typemap.JoinUnion(repeats)), Kind: stub.VarPositional})
	}
	return args, true
}

func (p *Parser) lookup(token string) (string, bool) {
	if builtinTypeName[token] {
		return token, true
	}
	return p.types.Lookup(token)
}

// repeatable accepts one value or a sequence of them
func repeatable(t string) string {
	if t == typemap.Any {
		return t
	}
	return "Sequence[" + t + "]|" + t
}

func argName(i int) string {
	return "arg" + strconv.Itoa(i+1)
}
