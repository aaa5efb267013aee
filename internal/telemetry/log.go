// Package telemetry provides the leveled logger used across the engine.
//
// It wraps the standard library's log package the same way the rest of this
// codebase's ambient libraries wrap well-known primitives: no external logging
// dependency is pulled in, just a small level filter and a consistent line
// format.
package telemetry

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	currentLevel = LevelInfo
	logger       = log.New(os.Stderr, "", 0)
)

// SetLevel sets the minimum level that will be emitted.
func SetLevel(level Level) {
	currentLevel = level
}

// Debug logs a debug-level message with structured fields.
func Debug(message string, fields map[string]any) {
	if currentLevel <= LevelDebug {
		emit("DEBUG", message, fields)
	}
}

// Info logs an info-level message with structured fields.
func Info(message string, fields map[string]any) {
	if currentLevel <= LevelInfo {
		emit("INFO", message, fields)
	}
}

// Warn logs a warn-level message with structured fields.
func Warn(message string, fields map[string]any) {
	if currentLevel <= LevelWarn {
		emit("WARN", message, fields)
	}
}

// Error logs an error-level message with structured fields.
func Error(message string, fields map[string]any) {
	if currentLevel <= LevelError {
		emit("ERROR", message, fields)
	}
}

func emit(level, message string, fields map[string]any) {
	line := fmt.Sprintf("[%s] %s: %s", time.Now().Format("2006-01-02 15:04:05"), level, message)
	if len(fields) > 0 {
		line += fmt.Sprintf(" %v", fields)
	}
	logger.Println(line)
}

// Timer starts a timer and returns a function that logs the elapsed duration
// at Debug level when called, typically via defer.
func Timer(name string) func() {
	start := time.Now()
	return func() {
		Debug("timer", map[string]any{"name": name, "elapsed": time.Since(start)})
	}
}
