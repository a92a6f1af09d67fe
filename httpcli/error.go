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

package httpcli

import (
	liberr "github.com/drouarb/aionet/errors"
)

const (
	// ErrorConfigValidate marks a config rejected by its constraints.
	ErrorConfigValidate liberr.CodeError = iota + liberr.MinPkgHttpCli
	// ErrorInvalidPoller marks a client built without a poller.
	ErrorInvalidPoller
	// ErrorInvalidRequest marks a request without a URL.
	ErrorInvalidRequest
)

func init() {
	liberr.RegisterIdFctMessage(ErrorConfigValidate, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorConfigValidate:
		return "http client config seems to be not valid"
	case ErrorInvalidPoller:
		return "http client requires a poller"
	case ErrorInvalidRequest:
		return "invalid http request"
	}

	return ""
}
