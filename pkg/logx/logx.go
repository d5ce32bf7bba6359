package logx

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync/atomic"
)

// ============================================================================
// Levels
// ============================================================================

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var currentLevel atomic.Int32

var std = log.New(os.Stdout, "", log.LstdFlags)

// SetLevel define el nivel mínimo que se escribe
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

func enabled(l Level) bool {
	return int32(l) >= currentLevel.Load()
}

func labelFor(l Level) string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func write(l Level, fields Fields, msg string) {
	if !enabled(l) {
		return
	}
	if len(fields) == 0 {
		std.Printf("[%s] %s", labelFor(l), msg)
		return
	}
	std.Printf("[%s] %s | %s", labelFor(l), msg, fields.String())
}

// ============================================================================
// Fields
// ============================================================================

// Fields son pares clave/valor adjuntos a una entrada de log
type Fields map[string]any

func (f Fields) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, f[k]))
	}
	return strings.Join(parts, " ")
}

// Entry es un log con campos acumulados
type Entry struct {
	fields Fields
}

// WithFields crea una entrada con campos
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

func (e *Entry) Debugf(format string, args ...any) {
	write(LevelDebug, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Infof(format string, args ...any) {
	write(LevelInfo, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Warnf(format string, args ...any) {
	write(LevelWarn, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Errorf(format string, args ...any) {
	write(LevelError, e.fields, fmt.Sprintf(format, args...))
}

// ============================================================================
// Package-level helpers
// ============================================================================

func Debug(msg string) { write(LevelDebug, nil, msg) }
func Info(msg string)  { write(LevelInfo, nil, msg) }
func Warn(msg string)  { write(LevelWarn, nil, msg) }
func Error(msg string) { write(LevelError, nil, msg) }

func Debugf(format string, args ...any) { write(LevelDebug, nil, fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { write(LevelInfo, nil, fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { write(LevelWarn, nil, fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { write(LevelError, nil, fmt.Sprintf(format, args...)) }

// Fatalf escribe y termina el proceso
func Fatalf(format string, args ...any) {
	std.Printf("[FATAL] %s", fmt.Sprintf(format, args...))
	os.Exit(1)
}
