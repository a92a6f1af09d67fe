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

package tcp_test

import (
	"context"
	"time"

	libaio "github.com/drouarb/aionet/aio"
	libtsk "github.com/drouarb/aionet/aio/task"
	libiot "github.com/drouarb/aionet/ioutils"
	libsck "github.com/drouarb/aionet/socket"
	libtcp "github.com/drouarb/aionet/socket/tcp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TCP Listener", func() {
	It("should bind an ephemeral port and report it", func() {
		s := newScheduler()
		defer s.Shutdown()

		lsn, err := libtcp.Listen(s, libsck.Config{Address: "127.0.0.1:0"})
		Expect(err).ToNot(HaveOccurred())

		defer func() {
			_ = lsn.Close()
		}()

		Expect(lsn.Addr()).ToNot(BeEmpty())
		Expect(lsn.Addr()).ToNot(HaveSuffix(":0"))
		Expect(lsn.Fd()).To(BeNumerically(">=", 0))
	})

	It("should close idempotently", func() {
		s := newScheduler()
		defer s.Shutdown()

		lsn, err := libtcp.Listen(s, libsck.Config{Address: "127.0.0.1:0"})
		Expect(err).ToNot(HaveOccurred())

		Expect(lsn.Close()).ToNot(HaveOccurred())
		Expect(lsn.Close()).ToNot(HaveOccurred())
		Expect(lsn.IsClosed()).To(BeTrue())
	})

	It("should refuse an invalid config", func() {
		s := newScheduler()
		defer s.Shutdown()

		_, err := libtcp.Listen(s, libsck.Config{})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("TCP Echo", func() {
	It("should echo bytes between a server task and a client task", func() {
		s := newScheduler()
		defer s.Shutdown()

		lsn, err := libtcp.Listen(s, libsck.Config{Address: "127.0.0.1:0"})
		Expect(err).ToNot(HaveOccurred())

		defer func() {
			_ = lsn.Close()
		}()

		addr := lsn.Addr()

		server := libtsk.New(context.Background(), func(tc *libtsk.Context) (struct{}, error) {
			conn, aerr := lsn.Accept(tc)
			if aerr != nil {
				return struct{}{}, aerr
			}

			defer func() {
				_ = conn.Close()
			}()

			buf := make([]byte, 1024)

			for {
				n, rerr := conn.Read(buf)

				if n > 0 {
					if _, werr := libiot.WriteAll(conn, buf[:n]); werr != nil {
						return struct{}{}, werr
					}
				}

				if rerr != nil {
					if libaio.IsClosed(rerr) {
						return struct{}{}, nil
					}

					return struct{}{}, rerr
				}
			}
		})

		client := libtsk.New(context.Background(), func(tc *libtsk.Context) (string, error) {
			conn, derr := libtcp.Dial(tc, s, libsck.Config{Address: addr})
			if derr != nil {
				return "", derr
			}

			if _, derr = libiot.WriteAll(conn, "hello"); derr != nil {
				_ = conn.Close()
				return "", derr
			}

			buf := make([]byte, 5)
			total := 0

			for total < len(buf) {
				n, rerr := conn.Read(buf[total:])
				total += n

				if rerr != nil {
					_ = conn.Close()
					return string(buf[:total]), rerr
				}
			}

			_ = conn.Close()

			return string(buf), nil
		})

		Expect(s.Start(server)).ToNot(HaveOccurred())
		Expect(s.Start(client)).ToNot(HaveOccurred())

		got, err := client.Wait(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal("hello"))

		_, err = server.Wait(context.Background())
		Expect(err).ToNot(HaveOccurred())
	})

	It("should report end of stream after the peer closes", func() {
		s := newScheduler()
		defer s.Shutdown()

		lsn, err := libtcp.Listen(s, libsck.Config{Address: "127.0.0.1:0"})
		Expect(err).ToNot(HaveOccurred())

		defer func() {
			_ = lsn.Close()
		}()

		addr := lsn.Addr()

		server := libtsk.New(context.Background(), func(tc *libtsk.Context) (struct{}, error) {
			conn, aerr := lsn.Accept(tc)
			if aerr != nil {
				return struct{}{}, aerr
			}

			return struct{}{}, conn.Close()
		})

		client := libtsk.New(context.Background(), func(tc *libtsk.Context) (int, error) {
			conn, derr := libtcp.Dial(tc, s, libsck.Config{Address: addr})
			if derr != nil {
				return 0, derr
			}

			defer func() {
				_ = conn.Close()
			}()

			n, rerr := conn.Read(make([]byte, 8))

			if !libaio.IsClosed(rerr) {
				return n, rerr
			}

			return n, nil
		})

		Expect(s.Start(server)).ToNot(HaveOccurred())
		Expect(s.Start(client)).ToNot(HaveOccurred())

		n, err := client.Wait(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(0))

		_, err = server.Wait(context.Background())
		Expect(err).ToNot(HaveOccurred())
	})

	It("should close a connection idempotently", func() {
		s := newScheduler()
		defer s.Shutdown()

		lsn, err := libtcp.Listen(s, libsck.Config{Address: "127.0.0.1:0"})
		Expect(err).ToNot(HaveOccurred())

		defer func() {
			_ = lsn.Close()
		}()

		addr := lsn.Addr()

		server := libtsk.New(context.Background(), func(tc *libtsk.Context) (struct{}, error) {
			conn, aerr := lsn.Accept(tc)
			if aerr != nil {
				return struct{}{}, aerr
			}

			time.Sleep(10 * time.Millisecond)
			return struct{}{}, conn.Close()
		})

		client := libtsk.New(context.Background(), func(tc *libtsk.Context) (struct{}, error) {
			conn, derr := libtcp.Dial(tc, s, libsck.Config{Address: addr})
			if derr != nil {
				return struct{}{}, derr
			}

			Expect(conn.Close()).ToNot(HaveOccurred())
			Expect(conn.Close()).ToNot(HaveOccurred())
			Expect(conn.IsClosed()).To(BeTrue())

			return struct{}{}, nil
		})

		Expect(s.Start(server)).ToNot(HaveOccurred())
		Expect(s.Start(client)).ToNot(HaveOccurred())

		_, err = client.Wait(context.Background())
		Expect(err).ToNot(HaveOccurred())

		_, err = server.Wait(context.Background())
		Expect(err).ToNot(HaveOccurred())
	})
})
