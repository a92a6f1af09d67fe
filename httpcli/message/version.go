/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package message

import (
	"fmt"
)

// Version is an HTTP protocol version. The zero value means
// unspecified and encodes as HTTP/1.1.
type Version struct {
	Major uint8
	Minor uint8
}

// Well known protocol versions.
var (
	Version10 = Version{Major: 1, Minor: 0}
	Version11 = Version{Major: 1, Minor: 1}
	Version20 = Version{Major: 2, Minor: 0}
)

// IsZero reports whether the version is unspecified.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// String returns the wire form "HTTP/x.y".
func (v Version) String() string {
	if v.IsZero() {
		v = Version11
	}

	return fmt.Sprintf("HTTP/%d.%d", v.Major, v.Minor)
}

// ParseVersion parses the wire form "HTTP/x.y".
func ParseVersion(s string) (Version, error) {
	var major, minor uint8

	if len(s) != 8 || s[:5] != "HTTP/" || s[6] != '.' {
		return Version{}, ErrorInvalidVersion.Error(nil)
	}

	if c := s[5]; c < '0' || c > '9' {
		return Version{}, ErrorInvalidVersion.Error(nil)
	} else {
		major = c - '0'
	}

	if c := s[7]; c < '0' || c > '9' {
		return Version{}, ErrorInvalidVersion.Error(nil)
	} else {
		minor = c - '0'
	}

	return Version{Major: major, Minor: minor}, nil
}
