package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across cmdstub.
const (
	FieldCommand   = "command"
	FieldFlag      = "flag"
	FieldToken     = "token"
	FieldTable     = "table"
	FieldURL       = "url"
	FieldPath      = "path"
	FieldVersion   = "version"
	FieldCount     = "count"
	FieldComponent = "component"
	FieldError     = "error"

	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named logger for a specific component.
//
//	type Fetcher struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewFetcher() *Fetcher {
//	    return &Fetcher{log: logger.ComponentLogger("docs.fetch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// CommandLogger returns a child logger carrying the command name.
func CommandLogger(parent *zap.SugaredLogger, command string) *zap.SugaredLogger {
	return parent.With(FieldCommand, command)
}
