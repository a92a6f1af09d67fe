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

package socket

import (
	"fmt"

	libdur "github.com/drouarb/aionet/duration"
	libval "github.com/go-playground/validator/v10"
)

// DefaultBacklog is the listen backlog used when none is configured.
const DefaultBacklog = 128

// Config describes a listener or a dialed connection.
type Config struct {
	// Address is the "host:port" endpoint to bind or connect to. Port 0
	// (an ephemeral port) is accepted only with an IP literal host.
	Address string `json:"address" yaml:"address" validate:"required,hostname_port|tcp_addr"`

	// Protocol selects the address family.
	Protocol Protocol `json:"protocol" yaml:"protocol"`

	// Backlog is the listen queue depth; zero uses DefaultBacklog.
	Backlog int `json:"backlog" yaml:"backlog" validate:"gte=0"`

	// KeepAlive enables TCP keep-alive probes.
	KeepAlive bool `json:"keepAlive" yaml:"keepAlive"`

	// Timeout bounds every suspendable operation on the socket; zero
	// disables the deadline.
	Timeout libdur.Duration `json:"timeout" yaml:"timeout"`
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

// GetBacklog returns the configured backlog or the default.
func (c Config) GetBacklog() int {
	if c.Backlog <= 0 {
		return DefaultBacklog
	}

	return c.Backlog
}
