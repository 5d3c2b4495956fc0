/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package node_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/kvnode/node/transport"
)

// fakeConn is an in-memory transport.Conn used across the node package's
// test suite. Write never fails unless failWrite is set; Close invokes
// the registered close listener exactly once.
type fakeConn struct {
	mu        sync.Mutex
	id        string
	open      bool
	failWrite bool
	onClose   func(c transport.Conn)
	written   [][]byte
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, open: true}
}

func (f *fakeConn) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWrite {
		return 0, fmt.Errorf("write failed on %s", f.id)
	}

	cp := make([]byte, len(p))
	copy(cp, p)
	f.written = append(f.written, cp)
	return len(p), nil
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	wasOpen := f.open
	f.open = false
	cb := f.onClose
	f.mu.Unlock()

	if wasOpen && cb != nil {
		cb(f)
	}
	return nil
}

func (f *fakeConn) RegisterFuncClose(fn func(c transport.Conn)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onClose = fn
}

var _ transport.Conn = (*fakeConn)(nil)

// fakeDialer hands out fakeConn instances, optionally failing the next N
// dials to simulate an unreachable endpoint.
type fakeDialer struct {
	counter    int64
	failNext   int64
	failAlways bool

	mu    sync.Mutex
	conns []*fakeConn
}

func (d *fakeDialer) Dial(_ context.Context, address string, port int, _ time.Duration) (transport.Conn, error) {
	if d.failAlways || atomic.AddInt64(&d.failNext, -1) >= 0 {
		return nil, fmt.Errorf("dial %s:%d refused", address, port)
	}

	n := atomic.AddInt64(&d.counter, 1)
	c := newFakeConn(fmt.Sprintf("conn-%d", n))

	d.mu.Lock()
	d.conns = append(d.conns, c)
	d.mu.Unlock()

	return c, nil
}

func (d *fakeDialer) dialedConns() []transport.Conn {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]transport.Conn, len(d.conns))
	for i, c := range d.conns {
		out[i] = c
	}
	return out
}

var _ transport.Dialer = (*fakeDialer)(nil)
