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
	"errors"
	"time"

	liberr "github.com/nabbar/kvnode/errors"
	"github.com/nabbar/kvnode/node/idlepool"
	"github.com/nabbar/kvnode/node/transport"
)

// onWriteFailed implements the write-completion handler's failure
// branch (§4.6). returnConnection is invoked immediately after the
// connection is closed; it must still release the permit exactly once
// even though the connection is already closed by the time it runs.
func (n *nd) onWriteFailed(c transport.Conn, op Operation, cause error) {
	n.inflight.Remove(c.ID())
	n.closeConnection(c)
	n.recent.Record(c.ID(), timeNow())
	n.metrics.recentClose.Inc()
	n.returnConnection(c)
	op.SetException(liberr.New(liberr.DispatchWriteFailed.Uint16(), "write failed", cause))
}

// OnSuccess implements ResponseListener.
func (n *nd) OnSuccess(c transport.Conn, msg interface{}) {
	op, ok := n.inflight.Get(c.ID())
	if !ok {
		return
	}

	nodeOp, isOp := op.(Operation)
	if !isOp {
		return
	}

	nodeOp.SetResponse(msg)

	if nodeOp.IsDone() {
		n.inflight.Remove(c.ID())
		n.returnConnection(c)
	}
}

// OnErrorResponse implements ResponseListener for a well-formed
// server-sent error reply. The connection remains usable.
func (n *nd) OnErrorResponse(c transport.Conn, err error) {
	op, ok := n.inflight.Get(c.ID())
	if !ok {
		return
	}

	n.inflight.Remove(c.ID())

	if nodeOp, isOp := op.(Operation); isOp {
		nodeOp.SetException(liberr.New(liberr.ReactorProtocolError.Uint16(), "protocol error reply", err))
	}

	n.returnConnection(c)
}

// OnException implements ResponseListener for a transport-level
// failure; the connection usually closes shortly afterward, which the
// in-progress-close handler then finds a no-op entry for.
func (n *nd) OnException(c transport.Conn, err error) {
	op, ok := n.inflight.Get(c.ID())
	if !ok {
		return
	}

	n.inflight.Remove(c.ID())

	if nodeOp, isOp := op.(Operation); isOp {
		nodeOp.SetException(liberr.New(liberr.ReactorTransportException.Uint16(), "transport exception", err))
	}

	n.returnConnection(c)
}

// onIdleClose is registered on a connection while it sits in the idle
// pool. The closed handle is not eagerly removed from the pool; the
// next Poll or reaper visit discards it. An idle death is still an
// unexpected disconnect as far as the passive health detector is
// concerned, so it feeds the recent-close log exactly like an
// in-progress close does.
func (n *nd) onIdleClose(c transport.Conn) {
	n.recent.Record(c.ID(), timeNow())
	n.metrics.recentClose.Inc()
}

// onInProgressClose fires when a connection carrying an operation
// closes before the reactor otherwise resolved it.
func (n *nd) onInProgressClose(c transport.Conn) {
	op, ok := n.inflight.Get(c.ID())
	if !ok {
		return
	}

	n.inflight.Remove(c.ID())
	n.recent.Record(c.ID(), timeNow())
	n.metrics.recentClose.Inc()
	n.returnConnection(c)

	if nodeOp, isOp := op.(Operation); isOp {
		cause := errors.New("connection closed unexpectedly")
		nodeOp.SetException(liberr.New(liberr.ReactorUnexpectedClose.Uint16(), "connection closed unexpectedly", cause))
	}
}

// returnConnection is called on every terminal path for an in-flight
// operation. It always releases exactly one permit.
func (n *nd) returnConnection(c transport.Conn) {
	n.mu.Lock()
	state := n.state
	n.mu.Unlock()

	if state == ShuttingDown || state == Shutdown {
		_ = c.Close()
		n.permit.Release(1)
		return
	}

	if c.IsOpen() {
		c.RegisterFuncClose(n.onIdleClose)
		n.idle.OfferFirst(idlepool.Record{Conn: c, IdleSince: timeNow()})
	}

	n.permit.Release(1)
	n.refreshGauges()
}

// closeConnection removes both close listeners before closing, so an
// explicit close does not pollute the recent-close log.
func (n *nd) closeConnection(c transport.Conn) {
	c.RegisterFuncClose(nil)
	_ = c.Close()
}

// timeNow is a package-level indirection so the health monitor and
// reactor share one clock source; kept as a var (not a const) to allow
// tests to control it if ever needed.
var timeNow = time.Now
