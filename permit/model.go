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

package permit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// weighted wraps a golang.org/x/sync/semaphore.Weighted fixed at ceiling
// permits. The unused head-room between the configured size and the
// ceiling is permanently held ("parked") by the Permit itself, so that
// growing or shrinking size only ever moves permits between "parked" and
// "available" without ever re-creating the semaphore.
type weighted struct {
	sem *semaphore.Weighted

	mu     sync.Mutex
	size   int64
	parked int64

	inUse int64 // atomic
}

func newWeighted(size, ceiling int64) *weighted {
	if ceiling < size {
		ceiling = size
	}

	w := &weighted{
		sem:  semaphore.NewWeighted(ceiling),
		size: size,
	}

	parked := ceiling - size
	if parked > 0 {
		// hold the unused head-room for the life of the semaphore so it
		// never gets handed out until SetSize grows into it.
		_ = w.sem.Acquire(context.Background(), parked)
		w.parked = parked
	}

	return w
}

func (w *weighted) TryAcquire(n int64) bool {
	if !w.sem.TryAcquire(n) {
		return false
	}
	atomic.AddInt64(&w.inUse, n)
	return true
}

func (w *weighted) Acquire(ctx context.Context, n int64) error {
	if err := w.sem.Acquire(ctx, n); err != nil {
		return err
	}
	atomic.AddInt64(&w.inUse, n)
	return nil
}

func (w *weighted) Release(n int64) {
	atomic.AddInt64(&w.inUse, -n)
	w.sem.Release(n)
}

func (w *weighted) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *weighted) Available() int64 {
	w.mu.Lock()
	size := w.size
	w.mu.Unlock()

	inUse := atomic.LoadInt64(&w.inUse)
	if avail := size - inUse; avail > 0 {
		return avail
	}
	return 0
}

// SetSize grows or shrinks the ceiling-bounded capacity by moving permits
// between the parked reserve and the live pool. Shrinking acquires the
// delta from the live semaphore (blocking until that many permits are
// idle) and parks it; growing releases the delta back out of the parked
// reserve.
func (w *weighted) SetSize(ctx context.Context, n int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	delta := n - w.size
	if delta == 0 {
		return nil
	}

	if delta > 0 {
		if delta > w.parked {
			return fmt.Errorf("permit: cannot grow size to %d: only %d of the %d ceiling is parked", n, w.parked, w.parked+w.size)
		}
		w.sem.Release(delta)
		w.parked -= delta
		w.size += delta
		return nil
	}

	shrink := -delta
	if err := w.sem.Acquire(ctx, shrink); err != nil {
		return err
	}

	w.parked += shrink
	w.size -= shrink
	return nil
}
