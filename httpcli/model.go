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
	"net"
	"sync"

	libtsk "github.com/drouarb/aionet/aio/task"
	libcch "github.com/drouarb/aionet/cache"
	libhdr "github.com/drouarb/aionet/httpcli/header"
	libh11 "github.com/drouarb/aionet/httpcli/http11"
	libmsg "github.com/drouarb/aionet/httpcli/message"
	libbuf "github.com/drouarb/aionet/ioutils/buffer"
	liblog "github.com/drouarb/aionet/logger"
	libpol "github.com/drouarb/aionet/pool"
	libsck "github.com/drouarb/aionet/socket"
	libtcp "github.com/drouarb/aionet/socket/tcp"
	libmet "github.com/prometheus/client_golang/prometheus"
)

const streamBufSize = 4096

// cnx is a pooled connection slot. The slot outlives its connection:
// a dead connection leaves an empty slot that redials on next use,
// which keeps the pool accounting simple.
type cnx struct {
	c  libtcp.Conn
	br libbuf.Reader
}

func (c *cnx) alive() bool {
	return c.c != nil && !c.c.IsClosed()
}

func (c *cnx) reset() {
	if c.c != nil {
		_ = c.c.Close()
		c.c = nil
		c.br = nil
	}
}

type cli struct {
	cfg Config
	p   libtcp.Poller

	m     sync.RWMutex
	pools map[string]libpol.Pool[*cnx]

	adr libcch.Cache[string, string]

	log liblog.FuncLog
	exc *libmet.CounterVec
}

func newClient(cfg Config, opt Options) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if opt.Poller == nil {
		return nil, ErrorInvalidPoller.Error(nil)
	}

	size := cfg.AddrCacheSize
	if size <= 0 {
		size = DefaultAddrCacheSize
	}

	c := &cli{
		cfg:   cfg,
		p:     opt.Poller,
		pools: make(map[string]libpol.Pool[*cnx]),
		adr:   libcch.New[string, string](size),
		log:   opt.Logger,
	}

	if opt.Registerer != nil {
		c.exc = libmet.NewCounterVec(libmet.CounterOpts{
			Name: "aionet_httpcli_exchanges_total",
			Help: "Number of HTTP exchanges per host.",
		}, []string{"host"})
		opt.Registerer.MustRegister(c.exc)
	}

	return c, nil
}

func (c *cli) Do(tc *libtsk.Context, req *libmsg.Request) (*libmsg.Response, error) {
	if tc == nil {
		return nil, libsck.ErrorNotBound.Error(nil)
	}

	if req == nil || req.URL == nil {
		return nil, ErrorInvalidRequest.Error(nil)
	}

	// only HTTP/1.x is spoken; the version field survives the data
	// model for forward compatibility
	if !req.Version.IsZero() && req.Version != libmsg.Version10 && req.Version != libmsg.Version11 {
		return nil, libh11.ErrorUnsupportedProtocol.Error(nil)
	}

	host := req.Host()

	pl := c.pool(host)

	pc, err := pl.Get()
	if err != nil {
		return nil, err
	}

	rsp, err := c.exchange(tc, pc, req)

	if err != nil {
		pc.reset()
		pl.Put(pc)
		return nil, err
	}

	if c.exc != nil {
		c.exc.WithLabelValues(host).Inc()
	}

	reuse := c.cfg.KeepAlive && rsp.IsKeepAlive()

	rsp.Body = &body{
		r:     rsp.Body,
		pc:    pc,
		pl:    pl,
		reuse: reuse,
	}

	return rsp, nil
}

// exchange runs one encode plus decode on the slot's connection,
// dialing it first when the slot is empty.
func (c *cli) exchange(tc *libtsk.Context, pc *cnx, req *libmsg.Request) (*libmsg.Response, error) {
	if !pc.alive() {
		if err := c.dial(tc, pc, req.Host()); err != nil {
			return nil, err
		}
	} else {
		pc.c.Bind(tc)
	}

	if req.Headers == nil {
		req.Headers = libhdr.New()
	}

	bw := libbuf.NewWriter(pc.c, streamBufSize)

	if err := libh11.EncodeRequest(bw, req); err != nil {
		return nil, err
	}

	if _, err := bw.Flush(); err != nil {
		return nil, err
	}

	return libh11.DecodeResponse(pc.br, c.cfg.MaxHeaderBytes)
}

// dial connects the slot, resolving the endpoint through the address
// cache.
func (c *cli) dial(tc *libtsk.Context, pc *cnx, host string) error {
	addr, err := c.adr.LoadOrStore(host, func(key string) (string, error) {
		adr, rerr := net.ResolveTCPAddr("tcp", key)
		if rerr != nil {
			return "", libsck.ErrorResolve.Error(rerr)
		}

		return adr.String(), nil
	})

	if err != nil {
		return err
	}

	conn, err := libtcp.Dial(tc, c.p, libsck.Config{
		Address:   addr,
		KeepAlive: c.cfg.KeepAlive,
		Timeout:   c.cfg.Timeout,
	})

	if err != nil {
		return err
	}

	pc.c = conn
	pc.br = libbuf.NewReader(conn, streamBufSize)

	return nil
}

// pool returns the per-host pool, creating it lazily: readers share
// the map lock, the first exchange to a host takes the write lock.
func (c *cli) pool(host string) libpol.Pool[*cnx] {
	c.m.RLock()
	pl, found := c.pools[host]
	c.m.RUnlock()

	if found {
		return pl
	}

	c.m.Lock()
	defer c.m.Unlock()

	// another exchange may have created it meanwhile
	if pl, found = c.pools[host]; found {
		return pl
	}

	max := c.cfg.MaxConnsPerHost
	if max <= 0 {
		max = DefaultMaxConnsPerHost
	}

	pl, _ = libpol.New[*cnx](libpol.Options{
		Target: max,
		Max:    max,
		Logger: c.log,
	}, func() (*cnx, error) {
		return &cnx{}, nil
	}, func(res *cnx) {
		res.reset()
	})

	c.pools[host] = pl

	return pl
}

func (c *cli) Close() error {
	c.m.Lock()
	defer c.m.Unlock()

	for host, pl := range c.pools {
		for pl.Available() > 0 {
			pc, ok, _ := pl.TryGet()

			if !ok || pc == nil {
				break
			}

			pc.reset()
			pl.Discard(pc)
		}

		delete(c.pools, host)
	}

	return nil
}
