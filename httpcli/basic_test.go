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

package httpcli_test

import (
	"context"

	libsch "github.com/drouarb/aionet/aio/scheduler"
	libtsk "github.com/drouarb/aionet/aio/task"
	libcli "github.com/drouarb/aionet/httpcli"
	libmsg "github.com/drouarb/aionet/httpcli/message"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type exchange struct {
	status libmsg.Status
	body   string
}

// get runs one GET exchange inside a task and fully consumes the body.
func get(s libsch.Scheduler, c libcli.Client, rawURL string) (exchange, error) {
	job := libtsk.New(context.Background(), func(tc *libtsk.Context) (exchange, error) {
		req, err := libmsg.NewRequest(libmsg.MethodGet, rawURL, nil)
		if err != nil {
			return exchange{}, err
		}

		rsp, err := c.Do(tc, req)
		if err != nil {
			return exchange{}, err
		}

		var (
			body []byte
			buf  = make([]byte, 64)
		)

		for {
			n, rerr := rsp.Body.Read(buf)
			body = append(body, buf[:n]...)

			if rerr != nil {
				break
			}
		}

		if err = rsp.Body.Close(); err != nil {
			return exchange{}, err
		}

		return exchange{status: rsp.Status, body: string(body)}, nil
	})

	if err := s.Start(job); err != nil {
		return exchange{}, err
	}

	return job.Wait(context.Background())
}

var _ = Describe("HTTP Client", func() {
	var (
		s libsch.Scheduler
		c libcli.Client
	)

	BeforeEach(func() {
		var err error

		s, err = libsch.New(libsch.Options{Workers: 3})
		Expect(err).ToNot(HaveOccurred())

		c, err = libcli.New(libcli.Config{KeepAlive: true}, libcli.Options{Poller: s})
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		if c != nil {
			_ = c.Close()
		}

		if s != nil {
			s.Shutdown()
		}
	})

	Context("configuration", func() {
		It("should refuse a client without a poller", func() {
			_, err := libcli.New(libcli.Config{}, libcli.Options{})
			Expect(err).To(HaveOccurred())
		})

		It("should refuse an unsupported protocol version", func() {
			srv := startServer(s, plainResponse("x", true))

			defer func() {
				_ = srv.lsn.Close()
			}()

			job := libtsk.New(context.Background(), func(tc *libtsk.Context) (struct{}, error) {
				req, err := libmsg.NewRequest(libmsg.MethodGet, "http://"+srv.lsn.Addr()+"/", nil)
				if err != nil {
					return struct{}{}, err
				}

				req.Version = libmsg.Version20

				_, err = c.Do(tc, req)
				return struct{}{}, err
			})

			Expect(s.Start(job)).ToNot(HaveOccurred())

			_, err := job.Wait(context.Background())
			Expect(err).To(HaveOccurred())
		})
	})

	Context("one exchange", func() {
		It("should observe the status, headers and body of the response", func() {
			srv := startServer(s, plainResponse("hello world", true))

			defer func() {
				_ = srv.lsn.Close()
			}()

			res, err := get(s, c, "http://"+srv.lsn.Addr()+"/")
			Expect(err).ToNot(HaveOccurred())
			Expect(res.status).To(Equal(libmsg.StatusOK))
			Expect(res.body).To(Equal("hello world"))
		})

		It("should yield a chunked body up to its end of stream", func() {
			raw := "HTTP/1.1 200 OK\r\n" +
				"Transfer-Encoding: chunked\r\n" +
				"\r\n" +
				"5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n"

			srv := startServer(s, raw)

			defer func() {
				_ = srv.lsn.Close()
			}()

			res, err := get(s, c, "http://"+srv.lsn.Addr()+"/")
			Expect(err).ToNot(HaveOccurred())
			Expect(res.body).To(Equal("hello world"))
		})
	})

	Context("connection pooling", func() {
		It("should reuse one connection across sequential keep alive exchanges", func() {
			srv := startServer(s,
				plainResponse("first", true),
				plainResponse("second", true),
			)

			defer func() {
				_ = srv.lsn.Close()
			}()

			base := "http://" + srv.lsn.Addr() + "/"

			res, err := get(s, c, base)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.body).To(Equal("first"))

			res, err = get(s, c, base)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.body).To(Equal("second"))

			Expect(srv.accepted.Load()).To(Equal(int32(1)))
			Expect(srv.exchanges.Load()).To(Equal(int32(2)))
		})

		It("should dial a fresh connection after a connection close response", func() {
			srv := startServer(s,
				plainResponse("first", false),
				plainResponse("second", false),
			)

			defer func() {
				_ = srv.lsn.Close()
			}()

			base := "http://" + srv.lsn.Addr() + "/"

			res, err := get(s, c, base)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.body).To(Equal("first"))

			res, err = get(s, c, base)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.body).To(Equal("second"))

			Expect(srv.accepted.Load()).To(Equal(int32(2)))
		})

		It("should keep distinct pools per host", func() {
			srvA := startServer(s, plainResponse("from a", true))
			srvB := startServer(s, plainResponse("from b", true))

			defer func() {
				_ = srvA.lsn.Close()
				_ = srvB.lsn.Close()
			}()

			resA, err := get(s, c, "http://"+srvA.lsn.Addr()+"/")
			Expect(err).ToNot(HaveOccurred())
			Expect(resA.body).To(Equal("from a"))

			resB, err := get(s, c, "http://"+srvB.lsn.Addr()+"/")
			Expect(err).ToNot(HaveOccurred())
			Expect(resB.body).To(Equal("from b"))

			Expect(srvA.accepted.Load()).To(Equal(int32(1)))
			Expect(srvB.accepted.Load()).To(Equal(int32(1)))
		})
	})
})
