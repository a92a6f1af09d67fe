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

// Command tcp-echo-server accepts connections on the given address and
// echoes every received byte back, one task per connection.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	libgrp "github.com/drouarb/aionet/aio/group"
	libsch "github.com/drouarb/aionet/aio/scheduler"
	libtsk "github.com/drouarb/aionet/aio/task"
	libiot "github.com/drouarb/aionet/ioutils"
	liblog "github.com/drouarb/aionet/logger"
	libsck "github.com/drouarb/aionet/socket"
	libtcp "github.com/drouarb/aionet/socket/tcp"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "tcp-echo-server <address>",
		Short: "echo every byte received on the given address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(address string) error {
	log := liblog.New(&liblog.Options{Level: "info", Output: os.Stderr})
	defer func() {
		_ = log.Close()
	}()

	sch, err := libsch.New(libsch.Options{Logger: liblog.Provide(log)})
	if err != nil {
		return err
	}

	lsn, err := libtcp.Listen(sch, libsck.Config{
		Address:   address,
		KeepAlive: true,
	})

	if err != nil {
		sch.Shutdown()
		return err
	}

	log.Info("listening on %s", lsn.Addr())

	grp := libgrp.New(libgrp.Options{Logger: liblog.Provide(log)})

	accept := libtsk.New(context.Background(), func(tc *libtsk.Context) (struct{}, error) {
		for {
			conn, aerr := lsn.Accept(tc)

			if aerr != nil {
				return struct{}{}, aerr
			}

			echo := libtsk.New(context.Background(), func(etc *libtsk.Context) (struct{}, error) {
				defer func() {
					_ = conn.Close()
				}()

				conn.Bind(etc)

				_, cerr := libiot.Copy(conn, conn)
				return struct{}{}, cerr
			})

			if aerr = grp.Start(echo, sch); aerr != nil {
				_ = conn.Close()
				return struct{}{}, aerr
			}
		}
	})

	if err = sch.Start(accept); err != nil {
		sch.Shutdown()
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")

	_ = lsn.Close()
	sch.Shutdown()

	return grp.Close()
}
