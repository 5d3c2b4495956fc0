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

	liberr "github.com/nabbar/kvnode/errors"
	"github.com/nabbar/kvnode/node/idlepool"
)

// Start implements Node.
func (n *nd) Start() liberr.Error {
	n.mu.Lock()
	if n.state != Created {
		n.mu.Unlock()
		return liberr.New(liberr.NodeIllegalState.Uint16(), "start called outside CREATED state")
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.cancelBackground = cancel
	n.setState(Running)
	n.mu.Unlock()

	for i := 0; i < n.cfg.MinConnections; i++ {
		conn, err := n.cfg.Dialer.Dial(ctx, n.cfg.RemoteAddress, n.cfg.RemotePort, n.cfg.ConnectionTimeout)
		if err != nil {
			n.metrics.dialErrors.Inc()
			n.log.Entry(n.log.GetLevel(), "initial connection failed").
				ErrorAdd(true, liberr.New(liberr.PoolConnectFailed.Uint16(), "initial connect failed", err)).
				Log()
			continue
		}

		conn.RegisterFuncClose(n.onIdleClose)
		n.idle.OfferFirst(idlepool.Record{Conn: conn, IdleSince: timeNow()})
	}

	n.refreshGauges()

	n.bgWG.Add(2)
	go n.runReaper(ctx)
	go n.runHealthMonitor(ctx)

	return nil
}

// Shutdown implements Node.
func (n *nd) Shutdown() (ShutdownHandle, liberr.Error) {
	n.mu.Lock()
	if n.state != Running && n.state != HealthChecking {
		n.mu.Unlock()
		return nil, liberr.New(liberr.NodeIllegalState.Uint16(), "shutdown called outside RUNNING or HEALTH_CHECKING state")
	}

	n.setState(ShuttingDown)
	cancel := n.cancelBackground
	n.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	handle := newShutdownHandle()

	go func() {
		n.bgWG.Wait()
		n.drainIdlePool()
		n.waitForInFlightDrain()

		n.mu.Lock()
		n.setState(Shutdown)
		n.mu.Unlock()

		handle.complete()
	}()

	return handle, nil
}

func (n *nd) drainIdlePool() {
	for {
		rec, ok := n.idle.Poll()
		if !ok {
			return
		}
		n.closeConnection(rec.Conn)
	}
}

func (n *nd) waitForInFlightDrain() {
	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if n.inflight.Len() == 0 {
			return
		}
	}
}

func (n *nd) SetMinConnections(v int) liberr.Error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cfg.MaxConnections > 0 && v > n.cfg.MaxConnections {
		return liberr.New(liberr.NodeIllegalArgument.Uint16(), "min_connections cannot exceed max_connections")
	}

	n.cfg.MinConnections = v
	return nil
}

func (n *nd) SetMaxConnections(v int) liberr.Error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if v > 0 && v < n.cfg.MinConnections {
		return liberr.New(liberr.NodeIllegalArgument.Uint16(), "max_connections cannot be below min_connections")
	}

	target := int64(v)
	if v <= 0 {
		target = permitCeiling
	}

	if err := n.permit.SetSize(context.Background(), target); err != nil {
		return liberr.New(liberr.NodeIllegalArgument.Uint16(), "failed to resize permit counter", err)
	}

	n.cfg.MaxConnections = v
	return nil
}

func (n *nd) SetIdleTimeout(d time.Duration) liberr.Error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cfg.IdleTimeout = d
	return nil
}

func (n *nd) SetConnectionTimeout(d time.Duration) liberr.Error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cfg.ConnectionTimeout = d
	return nil
}

func (n *nd) SetBlockOnMaxConnections(block bool) liberr.Error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cfg.BlockOnMaxConnections = block
	return nil
}
