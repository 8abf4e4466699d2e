// Package typemap converts the loosely typed tokens found in command
// documentation into stub type expressions.
package typemap

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/cmdstub/logger"
)

// Type expressions shared with the synthesizer and emitter
const (
	Any         = "Any"
	None        = "None"
	LiteralTrue = "Literal[True]"
)

var arraySuffix = regexp.MustCompile(`\[\d*\]$`)

// Mode selects how a token is mapped
type Mode struct {
	// Return maps a returned value; the return table wins over the general one
	Return bool
	// Tuples renders bracketed lists as tuple[...]; otherwise Sequence[...]
	// with sorted unique members
	Tuples bool
}

var (
	// ArgumentMode maps keyword argument types
	ArgumentMode = Mode{Tuples: true}
	// ReturnMode maps return types
	ReturnMode = Mode{Return: true, Tuples: true}
)

// Mapper maps documentation type tokens. Safe for concurrent use.
type Mapper struct {
	tables *Tables
	log    *zap.SugaredLogger

	mu     sync.Mutex
	warned map[string]bool
}

// NewMapper creates a mapper over the given tables
func NewMapper(tables *Tables) *Mapper {
	return &Mapper{
		tables: tables,
		log:    logger.ComponentLogger("typemap"),
		warned: make(map[string]bool),
	}
}

// Tables returns the tables the mapper reads
func (m *Mapper) Tables() *Tables {
	return m.tables
}

// Map converts a raw token into a type expression. Unknown tokens are
// returned unchanged and reported once.
func (m *Mapper) Map(token string, mode Mode) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return Any
	}

	if alternatives := splitTopLevel(token, '|'); len(alternatives) > 1 {
		return m.mapUnion(alternatives, mode)
	}

	// "[string, [, string, ], [, string, ]]" is a rendering defect for a flat tuple
	if strings.Contains(token, "[, ") {
		token = flattenTuple(token)
	}

	if strings.HasPrefix(token, "[") {
		inner := strings.TrimSuffix(strings.TrimPrefix(token, "["), "]")
		var items []string
		for _, item := range strings.Split(inner, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			items = append(items, m.Map(item, mode))
		}
		if mode.Tuples {
			return "tuple[" + strings.Join(items, ", ") + "]"
		}
		return "Sequence[" + strings.Join(sortUnique(items), ", ") + "]"
	}

	return m.mapSimple(token, mode)
}

// Lookup is the strict dictionary lookup: no arrays, unions or pass-through.
func (m *Mapper) Lookup(token string) (string, bool) {
	expr, ok := m.tables.Types[strings.ToLower(strings.TrimSpace(token))]
	return expr, ok
}

func (m *Mapper) mapUnion(alternatives []string, mode Mode) string {
	var members []string
	for _, alt := range alternatives {
		// Mapped alternatives may themselves be unions
		members = append(members, splitTopLevel(m.Map(alt, mode), '|')...)
	}
	return strings.Join(sortUnique(members), "|")
}

func (m *Mapper) mapSimple(token string, mode Mode) string {
	if loc := arraySuffix.FindStringIndex(token); loc != nil && loc[0] > 0 {
		return "list[" + m.mapSimple(token[:loc[0]], mode) + "]"
	}

	key := strings.ToLower(token)
	if mode.Return {
		if expr, ok := m.tables.ReturnTypes[key]; ok {
			return expr
		}
	}
	if expr, ok := m.tables.Types[key]; ok {
		return expr
	}

	m.warnOnce(token)
	return token
}

func (m *Mapper) warnOnce(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.warned[token] {
		return
	}
	m.warned[token] = true
	m.log.Warnw("Unmapped type token, emitting verbatim", logger.FieldToken, token)
}

// Unmapped returns the tokens passed through so far, sorted
func (m *Mapper) Unmapped() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	tokens := make([]string, 0, len(m.warned))
	for t := range m.warned {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// flattenTuple removes the stray "[, " and ", ]" fragments and any inner
// brackets so only the outer brackets remain.
func flattenTuple(token string) string {
	token = strings.ReplaceAll(token, "[, ", "")
	token = strings.ReplaceAll(token, ", ]", "")
	if !strings.HasPrefix(token, "[") {
		return token
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "["), "]")
	inner = strings.NewReplacer("[", "", "]", "").Replace(inner)
	return "[" + inner + "]"
}

// splitTopLevel splits s on sep outside of brackets
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// SplitUnion splits a type expression into its top-level union members
func SplitUnion(expr string) []string {
	return splitTopLevel(expr, '|')
}

// JoinUnion sorts and deduplicates members and joins them with "|".
// An empty set yields Any.
func JoinUnion(members []string) string {
	members = sortUnique(members)
	if len(members) == 0 {
		return Any
	}
	return strings.Join(members, "|")
}

func sortUnique(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
