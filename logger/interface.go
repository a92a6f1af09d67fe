/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logger wraps sirupsen/logrus behind a small interface shared
// by every long-lived component of this module. No global logger is
// kept: components receive a FuncLog provider and fall back to a
// discard logger when the provider or its result is nil.
package logger

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// FuncLog is a logger provider. Components store the provider, not the
// logger, so that callers may swap the backend at runtime.
type FuncLog func() Logger

// Fields is a free-form set of structured entry fields.
type Fields map[string]interface{}

// Logger is the logging facade of the module.
type Logger interface {
	io.Closer

	// SetLevel changes the minimal level of the logger.
	SetLevel(lvl Level)
	// GetLevel returns the current minimal level.
	GetLevel() Level

	// SetFields replaces the fields attached to every entry.
	SetFields(fields Fields)
	// GetFields returns the fields attached to every entry.
	GetFields() Fields

	// SetOutput redirects the logger to the given writer.
	SetOutput(out io.Writer)

	// Debug logs a formatted message at DebugLevel.
	Debug(msg string, args ...interface{})
	// Info logs a formatted message at InfoLevel.
	Info(msg string, args ...interface{})
	// Warning logs a formatted message at WarnLevel.
	Warning(msg string, args ...interface{})
	// Error logs a formatted message at ErrorLevel.
	Error(msg string, args ...interface{})

	// CheckError logs the given error at ErrorLevel if it is not nil
	// and reports whether an error was logged.
	CheckError(msg string, err error) bool

	// Entry logs a message at the given level with extra fields merged
	// over the logger's fields.
	Entry(lvl Level, msg string, fields Fields)

	// Writer exposes the logger as an io.Writer logging each written
	// line at the given level.
	Writer(lvl Level) io.Writer

	// Hashicorp returns an hclog view of this logger, for libraries
	// expecting a hashicorp/go-hclog sink.
	Hashicorp() hclog.Logger
}

// New returns a new Logger based on the given options. A nil options
// pointer yields a discard logger.
func New(opt *Options) Logger {
	return newLogger(opt)
}

// Nop returns a logger discarding everything.
func Nop() Logger {
	return newLogger(nil)
}

// Provide wraps a Logger into a FuncLog.
func Provide(l Logger) FuncLog {
	return func() Logger {
		return l
	}
}

// Get resolves a FuncLog into a usable Logger, never returning nil.
func Get(fct FuncLog) Logger {
	if fct == nil {
		return Nop()
	} else if l := fct(); l == nil {
		return Nop()
	} else {
		return l
	}
}
