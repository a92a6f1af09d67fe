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

package errors

// Code ranges reserved per package. Each package declares its codes as
// iota offsets from its range base and registers a message function in
// its own error.go.
const (
	MinPkgAio       = 100
	MinPkgReactor   = 200
	MinPkgTask      = 300
	MinPkgWorkers   = 400
	MinPkgGroup     = 500
	MinPkgScheduler = 600
	MinPkgIOUtils   = 700
	MinPkgBuffer    = 750
	MinPkgLimit     = 800
	MinPkgChunk     = 850
	MinPkgSocket    = 900
	MinPkgPool      = 1000
	MinPkgCache     = 1100
	MinPkgHeader    = 1200
	MinPkgMessage   = 1250
	MinPkgHttp11    = 1300
	MinPkgHttpCli   = 1400
	MinPkgLogger    = 1500
	MinPkgDuration  = 1600

	MinAvailable = 2000
)
