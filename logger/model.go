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
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures a new logger.
type Options struct {
	// Level is the textual minimal level (see ParseLevel).
	Level string `json:"level" yaml:"level"`
	// DisableTimestamp removes the timestamp of each entry.
	DisableTimestamp bool `json:"disableTimestamp" yaml:"disableTimestamp"`
	// DisableColor forces a plain text output.
	DisableColor bool `json:"disableColor" yaml:"disableColor"`
	// Output is the destination writer. Nil means discard.
	Output io.Writer `json:"-" yaml:"-"`
}

type lgr struct {
	m sync.RWMutex
	l *logrus.Logger
	f Fields
}

func newLogger(opt *Options) Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(InfoLevel.Logrus())
	l.SetFormatter(defaultFormatter(opt))

	if opt != nil {
		if opt.Output != nil {
			l.SetOutput(opt.Output)
		}

		l.SetLevel(ParseLevel(opt.Level).Logrus())
	}

	return &lgr{
		l: l,
		f: make(Fields),
	}
}

func defaultFormatter(opt *Options) logrus.Formatter {
	f := &logrus.TextFormatter{
		ForceQuote:      true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}

	if opt != nil {
		f.DisableTimestamp = opt.DisableTimestamp
		f.DisableColors = opt.DisableColor
	}

	return f
}

func (o *lgr) Close() error {
	o.SetLevel(NilLevel)
	o.SetOutput(io.Discard)
	return nil
}

func (o *lgr) SetLevel(lvl Level) {
	o.m.Lock()
	defer o.m.Unlock()

	if lvl == NilLevel {
		o.l.SetOutput(io.Discard)
	}

	o.l.SetLevel(lvl.Logrus())
}

func (o *lgr) GetLevel() Level {
	o.m.RLock()
	defer o.m.RUnlock()

	switch o.l.GetLevel() {
	case logrus.PanicLevel:
		return NilLevel
	case logrus.FatalLevel:
		return FatalLevel
	case logrus.ErrorLevel:
		return ErrorLevel
	case logrus.WarnLevel:
		return WarnLevel
	case logrus.InfoLevel:
		return InfoLevel
	default:
		return DebugLevel
	}
}

func (o *lgr) SetFields(fields Fields) {
	o.m.Lock()
	defer o.m.Unlock()

	if fields == nil {
		fields = make(Fields)
	}

	o.f = fields
}

func (o *lgr) GetFields() Fields {
	o.m.RLock()
	defer o.m.RUnlock()

	res := make(Fields, len(o.f))
	for k, v := range o.f {
		res[k] = v
	}

	return res
}

func (o *lgr) SetOutput(out io.Writer) {
	o.m.Lock()
	defer o.m.Unlock()

	if out == nil {
		out = io.Discard
	}

	o.l.SetOutput(out)
}

func (o *lgr) Debug(msg string, args ...interface{}) {
	o.entry(DebugLevel, msg, args...)
}

func (o *lgr) Info(msg string, args ...interface{}) {
	o.entry(InfoLevel, msg, args...)
}

func (o *lgr) Warning(msg string, args ...interface{}) {
	o.entry(WarnLevel, msg, args...)
}

func (o *lgr) Error(msg string, args ...interface{}) {
	o.entry(ErrorLevel, msg, args...)
}

func (o *lgr) CheckError(msg string, err error) bool {
	if err == nil {
		return false
	}

	o.Entry(ErrorLevel, msg, Fields{"error": err.Error()})
	return true
}

func (o *lgr) Entry(lvl Level, msg string, fields Fields) {
	o.m.RLock()
	defer o.m.RUnlock()

	e := o.l.WithFields(logrus.Fields(o.f))

	if len(fields) > 0 {
		e = e.WithFields(logrus.Fields(fields))
	}

	e.Log(lvl.Logrus(), msg)
}

func (o *lgr) entry(lvl Level, msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	o.Entry(lvl, msg, nil)
}

func (o *lgr) Writer(lvl Level) io.Writer {
	return &wrt{l: o, v: lvl}
}

type wrt struct {
	l Logger
	v Level
}

func (w *wrt) Write(p []byte) (n int, err error) {
	w.l.Entry(w.v, string(p), nil)
	return len(p), nil
}
