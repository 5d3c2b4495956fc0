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
	"time"

	"github.com/prometheus/client_golang/prometheus"

	liberr "github.com/nabbar/kvnode/errors"
	"github.com/nabbar/kvnode/node/transport"
)

// State is a point in the node's lifecycle.
type State uint8

const (
	// Created is the state before Start is first called.
	Created State = iota
	// Running is the normal operating state.
	Running
	// HealthChecking is entered from Running when the recent-close
	// window looks unhealthy; Execute still works, but the health
	// monitor is actively probing for recovery.
	HealthChecking
	// ShuttingDown is entered from Running or HealthChecking once
	// Shutdown is called; idle connections are being drained and new
	// work is refused.
	ShuttingDown
	// Shutdown is the terminal state, reached once every in-flight
	// operation has resolved and owned resources are released.
	Shutdown
)

func (s State) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Running:
		return "RUNNING"
	case HealthChecking:
		return "HEALTH_CHECKING"
	case ShuttingDown:
		return "SHUTTING_DOWN"
	case Shutdown:
		return "SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}

// Operation is one request dispatched through a node. The node calls
// back into it as the operation resolves; the caller's own type embeds
// or implements this to correlate the response with its request.
type Operation interface {
	// SetResponse delivers the decoded response payload.
	SetResponse(msg interface{})

	// IsDone reports whether the operation has already been resolved.
	// The node checks it after each SetResponse: once it reports true the
	// in-flight entry is cleared and the connection returned; until then
	// the operation stays in flight for further messages.
	IsDone() bool

	// SetException delivers a failure that prevented a response: write
	// failure, unexpected close, protocol error, or transport exception.
	// A failure to obtain a connection is not delivered here; Execute
	// returns false instead.
	SetException(err error)

	// SetLastNode records which node last carried this operation, for
	// callers that retry across nodes.
	SetLastNode(n Node)
}

// ShutdownHandle reports on an in-progress drain started by Shutdown.
// Cancel is intentionally absent: per the drain semantics, shutdown is
// not cancellable once started.
type ShutdownHandle interface {
	// Wait blocks until the drain completes.
	Wait()

	// WaitTimeout blocks until the drain completes or the timeout
	// elapses, reporting which happened.
	WaitTimeout(timeout time.Duration) (done bool)

	// IsDone reports whether the drain has already completed.
	IsDone() bool
}

// StateListener observes node lifecycle transitions.
type StateListener func(n Node, newState State)

// ResponseListener receives the outcome of writes dispatched by a node.
// The node itself implements it, and the I/O layer calls it with events
// for a connection; the node resolves the operation that connection is
// carrying through the matching Operation callback.
type ResponseListener interface {
	// OnSuccess is called with the connection that carried the
	// operation and the decoded response message.
	OnSuccess(c transport.Conn, msg interface{})

	// OnErrorResponse is called when the peer replies with a
	// well-formed error payload rather than a transport failure.
	OnErrorResponse(c transport.Conn, err error)

	// OnException is called for a transport exception on the
	// connection. Write failures and unexpected closes are handled by
	// the node's own write and close handlers, not through this method.
	OnException(c transport.Conn, err error)
}

// Node pools connections to one endpoint and dispatches operations over
// them.
type Node interface {
	// Start opens MinConnections connections, tolerating individual
	// failures, and begins the reaper and health monitor. Called in any
	// state other than CREATED it returns a NodeIllegalState error.
	Start() liberr.Error

	// Shutdown stops accepting new work and drains idle connections.
	// It returns immediately with a handle that completes once every
	// in-flight operation has resolved and owned resources are
	// released.
	Shutdown() (ShutdownHandle, liberr.Error)

	// Execute writes payload — a pre-serialized message; the node has
	// no wire-format knowledge — over a pooled or newly-opened
	// connection and registers op to receive the eventual response. It
	// returns false if the node cannot accept the operation right now
	// (saturated without blocking configured, or not running); no
	// permit is leaked on that path.
	Execute(op Operation, payload []byte) bool

	// GetNodeState returns the current lifecycle state.
	GetNodeState() State

	// GetRemoteAddress returns the configured endpoint host.
	GetRemoteAddress() string

	// GetRemotePort returns the configured endpoint port.
	GetRemotePort() int

	// AddStateListener registers l to be notified of every lifecycle
	// transition from this point on.
	AddStateListener(l StateListener)

	// RemoveStateListener unregisters a previously added listener.
	RemoveStateListener(l StateListener)

	// SetMinConnections updates the low-water mark the reaper targets.
	SetMinConnections(n int) liberr.Error

	// SetMaxConnections resizes the admission-control ceiling. Per the
	// node's resize semantics, shrinking below the current in-flight
	// count never reaps or rejects live operations; the overage simply
	// drains as those operations complete.
	SetMaxConnections(n int) liberr.Error

	// SetIdleTimeout updates the reaper's age threshold.
	SetIdleTimeout(d time.Duration) liberr.Error

	// SetConnectionTimeout updates the dial timeout used by
	// getConnection and the health probe.
	SetConnectionTimeout(d time.Duration) liberr.Error

	// SetBlockOnMaxConnections toggles whether Execute blocks or
	// fails fast once the pool is saturated.
	SetBlockOnMaxConnections(block bool) liberr.Error

	// Collectors returns the Prometheus collectors reporting this node's
	// pool occupancy and event counts, for registration with a
	// prometheus.Registerer of the caller's choosing.
	Collectors() []prometheus.Collector
}
