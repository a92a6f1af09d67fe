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

// Package httpcli provides the HTTP client of the runtime: one
// exchange borrows a connection from a lazily created per-host pool,
// encodes the request, decodes the response, and returns the
// connection once the response body has been consumed and closed.
//
// Resolved endpoint addresses are kept in a small SIEVE cache so that
// repeated exchanges to the same host skip name resolution.
package httpcli

import (
	"fmt"

	libtsk "github.com/drouarb/aionet/aio/task"
	libdur "github.com/drouarb/aionet/duration"
	libmsg "github.com/drouarb/aionet/httpcli/message"
	liblog "github.com/drouarb/aionet/logger"
	libtcp "github.com/drouarb/aionet/socket/tcp"
	libval "github.com/go-playground/validator/v10"
	libmet "github.com/prometheus/client_golang/prometheus"
)

// Default sizing of a new client.
const (
	DefaultMaxConnsPerHost = 2
	DefaultAddrCacheSize   = 128
)

// Client sends HTTP exchanges over pooled connections.
type Client interface {
	// Do sends the request and decodes its response. The response
	// body must be closed: closing drains and returns the borrowed
	// connection to the per-host pool.
	Do(tc *libtsk.Context, req *libmsg.Request) (*libmsg.Response, error)

	// Close releases every idle pooled connection.
	Close() error
}

// Config tunes a new client.
type Config struct {
	// MaxConnsPerHost bounds each per-host pool; zero uses
	// DefaultMaxConnsPerHost.
	MaxConnsPerHost int `json:"maxConnsPerHost" yaml:"maxConnsPerHost" validate:"gte=0"`

	// Timeout bounds every suspendable socket operation of an
	// exchange; zero disables the deadline.
	Timeout libdur.Duration `json:"timeout" yaml:"timeout"`

	// KeepAlive keeps connections for reuse after an exchange.
	KeepAlive bool `json:"keepAlive" yaml:"keepAlive"`

	// MaxHeaderBytes bounds a decoded header line; zero uses the
	// codec default.
	MaxHeaderBytes int `json:"maxHeaderBytes" yaml:"maxHeaderBytes" validate:"gte=0"`

	// AddrCacheSize bounds the resolved address cache; zero uses
	// DefaultAddrCacheSize.
	AddrCacheSize int `json:"addrCacheSize" yaml:"addrCacheSize" validate:"gte=0"`
}

// Validate checks the config against its constraints.
func (c Config) Validate() error {
	err := libval.New().Struct(c)

	if e, ok := err.(*libval.InvalidValidationError); ok {
		return ErrorConfigValidate.ErrorParent(e)
	}

	out := ErrorConfigValidate.Error(nil)

	if v, ok := err.(libval.ValidationErrors); ok {
		for _, e := range v {
			//nolint goerr113
			out.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.Field(), e.ActualTag()))
		}
	}

	if out.HasParent() {
		return out
	}

	return nil
}

// Options carries the collaborators of a new client.
type Options struct {
	// Poller is the scheduler surface used to dial and poll.
	Poller libtcp.Poller
	// Logger provides the client logger; nil discards.
	Logger liblog.FuncLog
	// Registerer receives the client metrics; nil disables them.
	Registerer libmet.Registerer
}

// New returns a client over the given poller.
func New(cfg Config, opt Options) (Client, error) {
	return newClient(cfg, opt)
}
