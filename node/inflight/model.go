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

package inflight

import (
	"sync/atomic"

	libatm "github.com/nabbar/kvnode/atomic"
	"github.com/nabbar/kvnode/node/transport"
)

type table struct {
	m libatm.MapTyped[string, Operation]
	n int64
}

func newTable() *table {
	return &table{
		m: libatm.NewMapTyped[string, Operation](),
	}
}

func (t *table) Put(conn transport.Conn, op Operation) {
	if conn == nil {
		return
	}

	if _, loaded := t.m.LoadOrStore(conn.ID(), op); !loaded {
		atomic.AddInt64(&t.n, 1)
		return
	}

	t.m.Store(conn.ID(), op)
}

func (t *table) Get(connID string) (Operation, bool) {
	return t.m.Load(connID)
}

func (t *table) Remove(connID string) {
	if _, loaded := t.m.LoadAndDelete(connID); loaded {
		atomic.AddInt64(&t.n, -1)
	}
}

func (t *table) Len() int {
	return int(atomic.LoadInt64(&t.n))
}

func (t *table) Range(fct func(connID string, op Operation) bool) {
	if fct == nil {
		return
	}

	t.m.Range(func(key string, value Operation) bool {
		return fct(key, value)
	})
}
