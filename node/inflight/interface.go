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

// Package inflight tracks the connection currently carrying each live
// operation. Entries are added when an operation is handed off to a
// connection and removed once a response, error, or close resolves it.
// A miss on removal is expected, not exceptional: a response and a close
// for the same connection can both try to clear its entry.
package inflight

import "github.com/nabbar/kvnode/node/transport"

// Operation is the minimal shape the in-flight map needs from a pending
// request; package node's Operation is the richer interface that
// satisfies it.
type Operation interface {
	IsDone() bool
}

// Table is a concurrent connection-id -> operation map. It carries no
// ordering guarantee; every method is safe for concurrent use.
type Table interface {
	// Put registers op as the operation currently owned by conn.
	Put(conn transport.Conn, op Operation)

	// Get returns the operation owned by the connection with the given
	// id, if any.
	Get(connID string) (op Operation, ok bool)

	// Remove clears the entry for the given connection id. Removing an
	// id that is not present is a no-op.
	Remove(connID string)

	// Len reports the number of connections currently carrying an
	// operation.
	Len() int

	// Range calls fct for every (connID, op) pair, stopping early if fct
	// returns false.
	Range(fct func(connID string, op Operation) bool)
}

func New() Table {
	return newTable()
}
