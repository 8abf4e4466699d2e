package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Everforest dark palette
var palette = struct {
	fg       string
	green    string
	greenMid string
	aqua     string
	orange   string
	yellow   string
	red      string
	redBg    string
	yellowBg string
}{
	fg:       "\x1b[38;5;223m",
	green:    "\x1b[38;5;108m",
	greenMid: "\x1b[38;5;107m",
	aqua:     "\x1b[38;5;109m",
	orange:   "\x1b[38;5;208m",
	yellow:   "\x1b[38;5;179m",
	red:      "\x1b[38;5;167m",
	redBg:    "\x1b[48;5;52m",
	yellowBg: "\x1b[48;5;58m",
}

var pool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  WARN  d.extract  Unmapped type token  command=ls token=nodeish"
// Context fields added through With() accumulate in the embedded map encoder.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := pool.Get()

	final.AppendString(palette.greenMid)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level only for WARN and above
	if ent.Level != zapcore.InfoLevel {
		if s := levelColorString(ent.Level); s != "" {
			final.AppendString("  ")
			final.AppendString(s)
		}
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(palette.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	var parts []string
	if len(enc.Fields) > 0 {
		parts = append(parts, formatMap(enc.Fields)...)
	}
	parts = append(parts, formatFields(fields)...)
	if len(parts) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(parts, " "))
	}

	final.AppendString("\n")
	return final, nil
}

func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return palette.aqua + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + palette.yellowBg + palette.yellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + palette.redBg + palette.red + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + palette.redBg + palette.red + level.CapitalString() + colorReset
	default:
		return ""
	}
}

func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	if hash%2 == 0 {
		return palette.green
	}
	return palette.orange
}

// abbreviateName shortens component names: docs.fetch -> d.fetch
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// formatFields renders every field as key=value in the order given.
// Fields are never dropped; values zap cannot flatten fall back to %v.
func formatFields(fields []zapcore.Field) []string {
	var parts []string
	for _, f := range fields {
		if f.Type == zapcore.SkipType {
			continue
		}
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		parts = append(parts, formatMap(m.Fields)...)
	}
	return parts
}

func formatMap(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, palette.aqua+k+colorReset+"="+formatValue(fields[k]))
	}
	return parts
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case []interface{}:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = formatValue(item)
		}
		return "[" + strings.Join(items, " ") + "]"
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
