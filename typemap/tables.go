package typemap

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/logger"
)

//go:embed tables/*.toml
var defaultTables embed.FS

// Override table file names. A file with the same name in the override
// directory replaces the embedded default.
const (
	TypeConversionFile        = "type_conversion.toml"
	TypeConversionReturnsFile = "type_conversion_returns.toml"
	CreateReturnTypesFile     = "create_return_types.toml"
	QueryFlagModifiersFile    = "query_flag_modifiers.toml"
	QueryReturnTypesFile      = "query_return_types.toml"
)

// TableFiles lists every override table in load order
var TableFiles = []string{
	TypeConversionFile,
	TypeConversionReturnsFile,
	CreateReturnTypesFile,
	QueryFlagModifiersFile,
	QueryReturnTypesFile,
}

// Tables holds the lookup data that steers type mapping and signature
// synthesis. Built once by LoadTables and read-only afterwards.
type Tables struct {
	// Types maps documentation type tokens to stub expressions
	Types map[string]string
	// ReturnTypes takes precedence over Types for returned values
	ReturnTypes map[string]string
	// CreateReturns maps command -> create flag -> return type
	CreateReturns map[string]map[string]string
	// QueryModifiers maps command -> modifier flag -> query flags it modifies
	QueryModifiers map[string]map[string][]string
	// QueryReturns maps command -> query flag -> return type
	QueryReturns map[string]map[string]string
}

type typeTable struct {
	Types map[string]string `toml:"types"`
}

// DefaultTables returns the embedded tables.
func DefaultTables() (*Tables, error) {
	return LoadTables("")
}

// LoadTables reads every table from dir, falling back to the embedded
// default for files dir does not contain. An empty dir loads only defaults.
func LoadTables(dir string) (*Tables, error) {
	log := logger.ComponentLogger("typemap")
	t := &Tables{}

	var types, returns typeTable
	steps := []struct {
		file string
		into interface{}
	}{
		{TypeConversionFile, &types},
		{TypeConversionReturnsFile, &returns},
		{CreateReturnTypesFile, &t.CreateReturns},
		{QueryFlagModifiersFile, &t.QueryModifiers},
		{QueryReturnTypesFile, &t.QueryReturns},
	}

	for _, step := range steps {
		data, source, err := readTable(dir, step.file)
		if err != nil {
			return nil, err
		}
		if _, err := toml.Decode(string(data), step.into); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidTable, "%s: %v", source, err)
		}
		log.Debugw("Loaded override table", logger.FieldTable, step.file, logger.FieldPath, source)
	}

	t.Types = types.Types
	t.ReturnTypes = returns.Types

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func readTable(dir, file string) ([]byte, string, error) {
	if dir != "" {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if !os.IsNotExist(err) {
			return nil, path, errors.Wrapf(err, "failed to read override table %s", path)
		}
	}

	data, err := defaultTables.ReadFile("tables/" + file)
	if err != nil {
		return nil, "", errors.Wrapf(err, "embedded table %s", file)
	}
	return data, "embedded:" + file, nil
}

// Validate checks table contents. Missing tables and missing entries are
// fine; malformed entries are not.
func (t *Tables) Validate() error {
	for name, table := range map[string]map[string]string{
		TypeConversionFile:        t.Types,
		TypeConversionReturnsFile: t.ReturnTypes,
	} {
		for token, expr := range table {
			if strings.TrimSpace(token) == "" {
				return errors.NewInvalidTableError("%s: empty type token", name)
			}
			if token != strings.ToLower(token) {
				return errors.WithHint(
					errors.NewInvalidTableError("%s: type token %q is not lowercase", name, token),
					"tokens are matched case-insensitively, write them in lowercase")
			}
			if strings.TrimSpace(expr) == "" {
				return errors.NewInvalidTableError("%s: empty expression for %q", name, token)
			}
		}
	}

	for name, table := range map[string]map[string]map[string]string{
		CreateReturnTypesFile: t.CreateReturns,
		QueryReturnTypesFile:  t.QueryReturns,
	} {
		for command, flags := range table {
			for flag, expr := range flags {
				if flag == "" || strings.TrimSpace(expr) == "" {
					return errors.NewInvalidTableError("%s: [%s] has an empty flag or return type", name, command)
				}
			}
		}
	}

	for command, modifiers := range t.QueryModifiers {
		for modifier, targets := range modifiers {
			if len(targets) == 0 {
				return errors.NewInvalidTableError("%s: [%s] %s modifies nothing", QueryFlagModifiersFile, command, modifier)
			}
			for _, target := range targets {
				if target == "" {
					return errors.NewInvalidTableError("%s: [%s] %s lists an empty flag", QueryFlagModifiersFile, command, modifier)
				}
				if target == modifier {
					return errors.NewInvalidTableError("%s: [%s] %s modifies itself", QueryFlagModifiersFile, command, modifier)
				}
			}
		}
	}
	return nil
}

// CreateReturn returns the override return type of a create flag
func (t *Tables) CreateReturn(command, flag string) (string, bool) {
	expr, ok := t.CreateReturns[command][flag]
	return expr, ok
}

// CreateReturnTypes returns every create-flag override return type of a command
func (t *Tables) CreateReturnTypes(command string) []string {
	flags := t.CreateReturns[command]
	types := make([]string, 0, len(flags))
	for _, expr := range flags {
		types = append(types, expr)
	}
	return types
}

// IsQueryModifier reports whether flag only modifies other query flags
func (t *Tables) IsQueryModifier(command, flag string) bool {
	_, ok := t.QueryModifiers[command][flag]
	return ok
}

// Modifies reports whether modifier applies to the query flag
func (t *Tables) Modifies(command, modifier, flag string) bool {
	for _, target := range t.QueryModifiers[command][modifier] {
		if target == flag {
			return true
		}
	}
	return false
}

// QueryReturn returns the override return type of a query flag
func (t *Tables) QueryReturn(command, flag string) (string, bool) {
	expr, ok := t.QueryReturns[command][flag]
	return expr, ok
}
