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

// Package duration provides a duration type with days notation and
// multiple encoding formats (text, JSON, YAML, CBOR), meant for use in
// configuration structs.
//
// Example:
//
//	type Config struct {
//	    Timeout duration.Duration `json:"timeout"`
//	}
//
//	d, _ := duration.Parse("1d2h3m4s")
//	std := d.Time()
package duration

import (
	"strings"
	"time"
)

// Duration wraps time.Duration with days support and codec methods.
type Duration time.Duration

// Parse parses a duration string. On top of the time.ParseDuration
// syntax, a leading "Nd" days component is accepted ("5d23h15m13s").
// Parsing is case insensitive and tolerates surrounding quotes.
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte parses a duration from its raw byte representation.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}

// New converts a standard time.Duration.
func New(d time.Duration) Duration {
	return Duration(d)
}

// Days returns a duration of n days.
func Days(n int64) Duration {
	return Duration(time.Duration(n) * 24 * time.Hour)
}

// Hours returns a duration of n hours.
func Hours(n int64) Duration {
	return Duration(time.Duration(n) * time.Hour)
}

// Minutes returns a duration of n minutes.
func Minutes(n int64) Duration {
	return Duration(time.Duration(n) * time.Minute)
}

// Seconds returns a duration of n seconds.
func Seconds(n int64) Duration {
	return Duration(time.Duration(n) * time.Second)
}

func parseString(s string) (Duration, error) {
	s = strings.Replace(s, "\"", "", -1)
	s = strings.Replace(s, "'", "", -1)
	s = strings.ToLower(strings.TrimSpace(s))

	var days time.Duration

	if i := strings.IndexRune(s, 'd'); i > 0 {
		if n, ok := atoi(s[:i]); ok {
			days = time.Duration(n) * 24 * time.Hour
			s = s[i+1:]
		}
	}

	if s == "" {
		return Duration(days), nil
	}

	if v, e := time.ParseDuration(s); e != nil {
		return 0, e
	} else {
		return Duration(days + v), nil
	}
}

func atoi(s string) (int64, bool) {
	var n int64

	if s == "" {
		return 0, false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}

		n = n*10 + int64(c-'0')
	}

	return n, true
}
