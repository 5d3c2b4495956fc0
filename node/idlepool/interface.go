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

// Package idlepool is a thread-safe LIFO store of connection records.
// Hitting the same small set of connections repeatedly keeps them hot;
// older entries age out predictably from the tail, which is what the
// reaper walks.
package idlepool

import (
	"time"

	"github.com/nabbar/kvnode/node/transport"
)

// Record pairs a connection with the moment it became idle.
type Record struct {
	Conn      transport.Conn
	IdleSince time.Time
}

type Pool interface {
	// OfferFirst pushes a record onto the head of the deque.
	OfferFirst(r Record)

	// Poll removes and returns the head record. ok is false if empty.
	Poll() (r Record, ok bool)

	// DescendingIterator walks the deque oldest-first (tail to head),
	// calling fct for each record. Iteration stops early if fct returns
	// false. Used by the reaper, which must see the oldest entries first.
	DescendingIterator(fct func(r Record) bool)

	// Remove drops the first record whose connection has the given ID,
	// reporting whether anything was removed.
	Remove(connID string) bool

	// Len returns the number of records currently held.
	Len() int
}

func New() Pool {
	return &deque{
		records: make([]Record, 0),
	}
}
