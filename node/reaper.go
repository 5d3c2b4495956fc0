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
	"time"

	"github.com/nabbar/kvnode/node/idlepool"
)

// runReaper trims the idle pool toward MinConnections on a fixed delay,
// oldest entry first, stopping at the first record still within the
// idle timeout.
func (n *nd) runReaper(ctx context.Context) {
	defer n.bgWG.Done()

	timer := time.NewTimer(reaperInitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			n.reapOnce()
			timer.Reset(reaperInterval)
		}
	}
}

func (n *nd) reapOnce() {
	n.mu.Lock()
	minConn := n.cfg.MinConnections
	idleTimeout := n.cfg.IdleTimeout
	n.mu.Unlock()

	total := n.inflight.Len() + n.idle.Len()
	if total <= minConn {
		return
	}

	now := timeNow()
	toClose := make([]idlepool.Record, 0)

	n.idle.DescendingIterator(func(rec idlepool.Record) bool {
		if total <= minConn {
			return false
		}
		if rec.IdleSince.Add(idleTimeout).After(now) {
			return false
		}
		if n.idle.Remove(rec.Conn.ID()) {
			toClose = append(toClose, rec)
			total--
		}
		return true
	})

	for _, rec := range toClose {
		n.closeConnection(rec.Conn)
	}
	if len(toClose) > 0 {
		n.metrics.reaped.Add(float64(len(toClose)))
	}
	n.refreshGauges()
}
