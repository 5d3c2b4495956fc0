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

// Package transport names the boundary between the pool/dispatcher and the
// underlying I/O layer. Framing, serialization and the event loop itself
// are owned elsewhere; this package only describes the shape the node
// needs: a writable handle that reports whether it is still open and
// that can carry a single "closed" listener.
package transport

import (
	"context"
	"io"
	"time"
)

// Conn is one live connection to an endpoint. It carries at most one
// in-flight operation at a time.
type Conn interface {
	io.Writer

	// ID uniquely identifies this connection for the lifetime of the
	// process; it is used as the in-flight map key.
	ID() string

	// IsOpen reports whether the connection is still usable. It does not
	// block or probe the network; it reflects the last known state.
	IsOpen() bool

	// Close closes the connection. It is safe to call more than once.
	Close() error

	// RegisterFuncClose installs the listener invoked when this
	// connection closes, replacing whatever listener was registered
	// before (the pool swaps between an "idle" and an "in-progress"
	// variant depending on the connection's current owner). A nil
	// listener disables notification.
	RegisterFuncClose(fn func(c Conn))
}

// Dialer opens new connections to an endpoint. Both the dispatcher's
// connection acquisition path and the health monitor's active probe use
// the same Dialer.
type Dialer interface {
	Dial(ctx context.Context, address string, port int, timeout time.Duration) (Conn, error)
}
