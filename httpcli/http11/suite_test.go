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

package http11_test

import (
	"io"
	"testing"

	libhdr "github.com/drouarb/aionet/httpcli/header"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHttp11(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "HTTP11 Codec Suite")
}

func newHeaders(kv ...string) libhdr.Headers {
	res := libhdr.New()

	for i := 0; i+1 < len(kv); i += 2 {
		res.Add(kv[i], kv[i+1])
	}

	return res
}

func bodyString(r io.Reader) string {
	var (
		res []byte
		buf = make([]byte, 16)
	)

	for {
		n, err := r.Read(buf)
		res = append(res, buf[:n]...)

		if err != nil {
			return string(res)
		}
	}
}
