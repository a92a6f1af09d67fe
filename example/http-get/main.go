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

// Command http-get fetches a URL through the runtime's HTTP client and
// prints the response on stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	libsch "github.com/drouarb/aionet/aio/scheduler"
	libtsk "github.com/drouarb/aionet/aio/task"
	libdur "github.com/drouarb/aionet/duration"
	libcli "github.com/drouarb/aionet/httpcli"
	libmsg "github.com/drouarb/aionet/httpcli/message"
	libiot "github.com/drouarb/aionet/ioutils"
	liblog "github.com/drouarb/aionet/logger"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "http-get <url>",
		Short: "fetch a url over the aionet runtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(rawURL string) error {
	log := liblog.New(&liblog.Options{Level: "warning", Output: os.Stderr})
	defer func() {
		_ = log.Close()
	}()

	sch, err := libsch.New(libsch.Options{Logger: liblog.Provide(log)})
	if err != nil {
		return err
	}

	defer sch.Shutdown()

	cli, err := libcli.New(libcli.Config{
		KeepAlive: true,
		Timeout:   libdur.New(15 * time.Second),
	}, libcli.Options{
		Poller: sch,
		Logger: liblog.Provide(log),
	})

	if err != nil {
		return err
	}

	defer func() {
		_ = cli.Close()
	}()

	job := libtsk.New(context.Background(), func(tc *libtsk.Context) (int, error) {
		req, terr := libmsg.NewRequest(libmsg.MethodGet, rawURL, nil)
		if terr != nil {
			return 0, terr
		}

		rsp, terr := cli.Do(tc, req)
		if terr != nil {
			return 0, terr
		}

		defer func() {
			_ = rsp.Body.Close()
		}()

		fmt.Printf("%s %s %s\n", rsp.Version.String(), rsp.Status.String(), rsp.Reason)

		rsp.Headers.Walk(func(key string, vals []string) bool {
			for _, val := range vals {
				fmt.Printf("%s: %s\n", key, val)
			}

			return true
		})

		fmt.Println()

		n, terr := libiot.Copy(os.Stdout, rsp.Body)
		return int(n), terr
	})

	if err = sch.Start(job); err != nil {
		return err
	}

	_, err = job.Wait(context.Background())
	return err
}
