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

// Package socket defines the shared types of the stream socket layer:
// the handler contracts, the address family selector and the listener
// configuration. The TCP implementation lives in the tcp sub package.
package socket

import (
	"io"
	"strings"
)

// Reader is the request side handed to a connection handler.
type Reader interface {
	io.ReadCloser
}

// Writer is the response side handed to a connection handler.
type Writer interface {
	io.WriteCloser
}

// HandlerFunc serves one accepted connection. Both sides must be
// closed by the handler.
type HandlerFunc func(request Reader, response Writer)

// Protocol selects the address family of a socket.
type Protocol uint8

const (
	// ProtocolAny lets the resolver pick the family.
	ProtocolAny Protocol = iota
	// ProtocolIPv4 forces IPv4.
	ProtocolIPv4
	// ProtocolIPv6 forces IPv6.
	ProtocolIPv6
)

// String returns the symbolic name of the protocol.
func (p Protocol) String() string {
	switch p {
	case ProtocolIPv4:
		return "ipv4"
	case ProtocolIPv6:
		return "ipv6"
	}

	return "any"
}

// Network returns the go network name used by the resolver.
func (p Protocol) Network() string {
	switch p {
	case ProtocolIPv4:
		return "tcp4"
	case ProtocolIPv6:
		return "tcp6"
	}

	return "tcp"
}

// ParseProtocol returns the protocol matching the given name,
// defaulting to ProtocolAny.
func ParseProtocol(s string) Protocol {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "4", "ipv4", "tcp4", "inet":
		return ProtocolIPv4
	case "6", "ipv6", "tcp6", "inet6":
		return ProtocolIPv6
	}

	return ProtocolAny
}

// MarshalText implements encoding.TextMarshaler.
func (p Protocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Protocol) UnmarshalText(b []byte) error {
	*p = ParseProtocol(string(b))
	return nil
}
