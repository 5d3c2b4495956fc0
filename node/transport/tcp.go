/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrAddress is returned by the TCP dialer's Dial when the remote
// address is empty.
var ErrAddress = errors.New("transport: empty remote address")

// tcpConn wraps a net.Conn and satisfies Conn. A background goroutine
// blocks on Read solely to detect the peer closing or resetting the
// connection; framing and decoding of whatever bytes arrive belong to
// the caller installed through a ResponseListener elsewhere, not to this
// package.
type tcpConn struct {
	id string
	nc net.Conn

	mu      sync.Mutex
	open    bool
	onClose func(c Conn)
}

func newTCPConn(nc net.Conn) *tcpConn {
	c := &tcpConn{
		id:   uuid.NewString(),
		nc:   nc,
		open: true,
	}
	go c.watch()
	return c
}

func (c *tcpConn) watch() {
	buf := make([]byte, 1)
	for {
		if _, err := c.nc.Read(buf); err != nil {
			c.Close()
			return
		}
	}
}

func (c *tcpConn) Write(p []byte) (int, error) {
	return c.nc.Write(p)
}

func (c *tcpConn) ID() string { return c.id }

func (c *tcpConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *tcpConn) Close() error {
	c.mu.Lock()
	wasOpen := c.open
	c.open = false
	cb := c.onClose
	c.mu.Unlock()

	err := c.nc.Close()

	if wasOpen && cb != nil {
		cb(c)
	}
	return err
}

func (c *tcpConn) RegisterFuncClose(fn func(c Conn)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onClose = fn
}

var _ Conn = (*tcpConn)(nil)

// tcpDialer dials plain TCP connections with net.Dialer, the way the
// reference socket client builds its outbound side.
type tcpDialer struct{}

// NewTCPDialer returns a Dialer that opens real TCP connections.
func NewTCPDialer() Dialer {
	return &tcpDialer{}
}

func (d *tcpDialer) Dial(ctx context.Context, address string, port int, timeout time.Duration) (Conn, error) {
	if address == "" {
		return nil, ErrAddress
	}

	nd := net.Dialer{Timeout: timeout}

	dialCtx := ctx
	if dialCtx == nil {
		dialCtx = context.Background()
	}

	nc, err := nd.DialContext(dialCtx, "tcp", fmt.Sprintf("%s:%d", address, port))
	if err != nil {
		return nil, err
	}

	return newTCPConn(nc), nil
}

var _ Dialer = (*tcpDialer)(nil)
