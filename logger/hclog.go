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

package logger

import (
	"io"
	"log"

	"github.com/hashicorp/go-hclog"
)

// Hashicorp exposes the logger through the hashicorp/go-hclog
// interface, for third party libraries expecting that sink.
func (o *lgr) Hashicorp() hclog.Logger {
	return &hcl{l: o}
}

type hcl struct {
	l Logger
	n string
	f []interface{}
}

func hclogLevel(lvl hclog.Level) Level {
	switch lvl {
	case hclog.Trace, hclog.Debug:
		return DebugLevel
	case hclog.Info, hclog.NoLevel:
		return InfoLevel
	case hclog.Warn:
		return WarnLevel
	case hclog.Error:
		return ErrorLevel
	case hclog.Off:
		return NilLevel
	}

	return InfoLevel
}

func (h *hcl) fields(args ...interface{}) Fields {
	all := append(append(make([]interface{}, 0, len(h.f)+len(args)), h.f...), args...)
	res := make(Fields, len(all)/2)

	for i := 0; i+1 < len(all); i += 2 {
		if k, ok := all[i].(string); ok {
			res[k] = all[i+1]
		}
	}

	if h.n != "" {
		res["name"] = h.n
	}

	return res
}

func (h *hcl) Log(level hclog.Level, msg string, args ...interface{}) {
	h.l.Entry(hclogLevel(level), msg, h.fields(args...))
}

func (h *hcl) Trace(msg string, args ...interface{}) { h.Log(hclog.Trace, msg, args...) }
func (h *hcl) Debug(msg string, args ...interface{}) { h.Log(hclog.Debug, msg, args...) }
func (h *hcl) Info(msg string, args ...interface{})  { h.Log(hclog.Info, msg, args...) }
func (h *hcl) Warn(msg string, args ...interface{})  { h.Log(hclog.Warn, msg, args...) }
func (h *hcl) Error(msg string, args ...interface{}) { h.Log(hclog.Error, msg, args...) }

func (h *hcl) IsTrace() bool { return h.l.GetLevel() >= DebugLevel }
func (h *hcl) IsDebug() bool { return h.l.GetLevel() >= DebugLevel }
func (h *hcl) IsInfo() bool  { return h.l.GetLevel() >= InfoLevel }
func (h *hcl) IsWarn() bool  { return h.l.GetLevel() >= WarnLevel }
func (h *hcl) IsError() bool { return h.l.GetLevel() >= ErrorLevel }

func (h *hcl) ImpliedArgs() []interface{} { return h.f }

func (h *hcl) With(args ...interface{}) hclog.Logger {
	return &hcl{l: h.l, n: h.n, f: append(append([]interface{}{}, h.f...), args...)}
}

func (h *hcl) Name() string { return h.n }

func (h *hcl) Named(name string) hclog.Logger {
	if h.n != "" {
		name = h.n + "." + name
	}

	return h.ResetNamed(name)
}

func (h *hcl) ResetNamed(name string) hclog.Logger {
	return &hcl{l: h.l, n: name, f: h.f}
}

func (h *hcl) SetLevel(level hclog.Level) {
	h.l.SetLevel(hclogLevel(level))
}

func (h *hcl) GetLevel() hclog.Level {
	switch h.l.GetLevel() {
	case DebugLevel:
		return hclog.Debug
	case InfoLevel:
		return hclog.Info
	case WarnLevel:
		return hclog.Warn
	case ErrorLevel, FatalLevel:
		return hclog.Error
	case NilLevel:
		return hclog.Off
	}

	return hclog.Info
}

func (h *hcl) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	if opts == nil {
		opts = &hclog.StandardLoggerOptions{}
	}

	return log.New(h.StandardWriter(opts), "", 0)
}

func (h *hcl) StandardWriter(_ *hclog.StandardLoggerOptions) io.Writer {
	return h.l.Writer(InfoLevel)
}
