package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the logging contract shared by all components. It offers
// structured methods (Info, Error, Debug) carrying typed fields, plus the
// printf-style methods some third-party callbacks expect.
type Logger interface {
	// Info logs an informational message with optional structured fields.
	Info(msg string, fields ...Field)
	// Error logs an error message with the error and optional structured fields.
	Error(msg string, err error, fields ...Field)
	// Debug logs a debug message with optional structured fields.
	Debug(msg string, fields ...Field)
	// Printf logs a formatted message at info level.
	Printf(format string, v ...any)
	// Println logs its arguments at info level, space-separated.
	Println(v ...any)
}

// Field is a single structured logging field.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates an error field with the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a component logger writing JSON lines to w.
// The component name is attached to every event.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	logger := zerolog.New(w).With().
		Timestamp().
		Str("component", component).
		Logger()
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger creates the process-wide default logger writing to stderr.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "gilbench")
}

// Info logs an informational message with optional structured fields.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	a.applyFields(a.logger.Info(), fields).Msg(msg)
}

// Error logs an error message. A nil err is allowed and logged without a cause.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	a.applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs a debug message with optional structured fields.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	a.applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (a *ZerologAdapter) Printf(format string, v ...any) {
	a.logger.Info().Msg(fmt.Sprintf(format, v...))
}

// Println logs its arguments at info level, space-separated.
func (a *ZerologAdapter) Println(v ...any) {
	a.logger.Info().Msg(fmt.Sprintln(v...))
}

// applyFields attaches each field to the event using the zerolog method
// matching the value's dynamic type.
func (a *ZerologAdapter) applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

// StdLoggerAdapter implements Logger on top of the standard library logger.
// It exists for environments where zerolog's JSON output is unwanted.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps an existing *log.Logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// Info logs an informational message with a [INFO] prefix.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error logs an error message with a [ERROR] prefix.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if err != nil {
		a.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
		return
	}
	a.logger.Printf("[ERROR] %s%s", msg, formatFields(fields))
}

// Debug logs a debug message with a [DEBUG] prefix.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Printf logs a formatted message.
func (a *StdLoggerAdapter) Printf(format string, v ...any) {
	a.logger.Printf(format, v...)
}

// Println logs its arguments, space-separated.
func (a *StdLoggerAdapter) Println(v ...any) {
	a.logger.Println(v...)
}

// formatFields renders fields as " key=value" pairs for plain-text output.
func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	out := ""
	for _, f := range fields {
		out += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}
	return out
}
