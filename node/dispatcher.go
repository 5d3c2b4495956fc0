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

package node

import (
	"context"

	liberr "github.com/nabbar/kvnode/errors"
	"github.com/nabbar/kvnode/node/transport"
)

// Execute implements Node.
func (n *nd) Execute(op Operation, payload []byte) bool {
	if op == nil {
		return false
	}

	op.SetLastNode(n)

	n.mu.Lock()
	state := n.state
	n.mu.Unlock()

	if state != Running && state != HealthChecking {
		return false
	}

	c, ok := n.getConnection(context.Background())
	if !ok {
		return false
	}

	n.inflight.Put(c, op)
	n.refreshGauges()

	if _, err := c.Write(payload); err != nil {
		n.onWriteFailed(c, op, err)
		return true
	}

	// Write completed successfully: the connection now carries a live
	// operation, so watch for a mid-operation disconnect.
	c.RegisterFuncClose(n.onInProgressClose)

	return true
}

// getConnection implements §4.5. On every exit path either a permit is
// held and a live connection is returned, or no permit is held and ok
// is false.
func (n *nd) getConnection(ctx context.Context) (c transport.Conn, ok bool) {
	if n.cfg.BlockOnMaxConnections {
		if err := n.permit.Acquire(ctx, 1); err != nil {
			return nil, false
		}
	} else if !n.permit.TryAcquire(1) {
		return nil, false
	}

	for {
		rec, found := n.idle.Poll()
		if !found {
			break
		}
		if rec.Conn.IsOpen() {
			rec.Conn.RegisterFuncClose(nil)
			return rec.Conn, true
		}
	}

	dialCtx := ctx
	var cancel context.CancelFunc
	if n.cfg.ConnectionTimeout > 0 {
		dialCtx, cancel = context.WithTimeout(ctx, n.cfg.ConnectionTimeout)
		defer cancel()
	}

	conn, err := n.cfg.Dialer.Dial(dialCtx, n.cfg.RemoteAddress, n.cfg.RemotePort, n.cfg.ConnectionTimeout)
	if err != nil {
		n.permit.Release(1)
		n.metrics.dialErrors.Inc()
		n.log.Entry(n.log.GetLevel(), "connect failed").
			FieldAdd("remote", n.cfg.RemoteAddress).
			ErrorAdd(true, liberr.New(liberr.PoolConnectFailed.Uint16(), "connect failed", err)).
			Log()
		return nil, false
	}

	return conn, true
}
