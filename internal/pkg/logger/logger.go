// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logger provides leveled printf-style logging for the Crema Panel server.
package logger

import (
	"log"
	"os"
)

// Logger defines the logging interface used throughout the application.
type Logger interface {
	// Debug logs a debug-level message
	Debug(format string, args ...interface{})
	// Info logs an info-level message
	Info(format string, args ...interface{})
	// Warn logs a warning-level message
	Warn(format string, args ...interface{})
	// Error logs an error-level message
	Error(format string, args ...interface{})
}

// stdLogger implements Logger on top of the standard library log package.
type stdLogger struct {
	out *log.Logger
}

// New creates a logger writing to stdout with timestamps.
func New() Logger {
	return &stdLogger{
		out: log.New(os.Stdout, "", log.LstdFlags),
	}
}

func (l *stdLogger) Debug(format string, args ...interface{}) {
	l.out.Printf("[DEBUG] "+format, args...)
}

func (l *stdLogger) Info(format string, args ...interface{}) {
	l.out.Printf("[INFO] "+format, args...)
}

func (l *stdLogger) Warn(format string, args ...interface{}) {
	l.out.Printf("[WARN] "+format, args...)
}

func (l *stdLogger) Error(format string, args ...interface{}) {
	l.out.Printf("[ERROR] "+format, args...)
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
