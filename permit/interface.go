/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

// Package permit implements a resizable counting semaphore used for
// per-endpoint admission control: the number of connections that may be
// checked out to operations at once.
package permit

import "context"

// Permit is a resizable counting semaphore. Waiters are served in FIFO
// order by the underlying weighted semaphore.
type Permit interface {
	// TryAcquire reports whether n permits were available and acquires
	// them without blocking; it returns false without side effects if not.
	TryAcquire(n int64) bool

	// Acquire blocks until n permits are available or ctx is done.
	Acquire(ctx context.Context, n int64) error

	// Release returns n permits previously obtained via TryAcquire/Acquire.
	Release(n int64)

	// SetSize changes the maximum number of permits. Shrinking blocks
	// until enough permits can be set aside to honor the new ceiling;
	// ctx governs that wait. Growing never blocks.
	SetSize(ctx context.Context, n int64) error

	// Size returns the current configured maximum.
	Size() int64

	// Available returns a snapshot of the number of permits not currently
	// held by a caller. It is advisory: it can be stale the instant it
	// is read under concurrent use.
	Available() int64
}

// New builds a Permit with the given initial size and hard ceiling. The
// ceiling bounds how high SetSize can ever grow the permit count and is
// fixed for the lifetime of the Permit.
func New(size, ceiling int64) Permit {
	return newWeighted(size, ceiling)
}
