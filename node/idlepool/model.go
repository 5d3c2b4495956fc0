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

package idlepool

import "sync"

// deque stores records with index 0 as the head (most recently offered).
// The tail (highest index) is the oldest entry.
type deque struct {
	mu      sync.Mutex
	records []Record
}

func (d *deque) OfferFirst(r Record) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.records = append([]Record{r}, d.records...)
}

func (d *deque) Poll() (Record, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.records) == 0 {
		return Record{}, false
	}

	r := d.records[0]
	d.records = d.records[1:]
	return r, true
}

func (d *deque) DescendingIterator(fct func(r Record) bool) {
	if fct == nil {
		return
	}

	d.mu.Lock()
	snapshot := make([]Record, len(d.records))
	copy(snapshot, d.records)
	d.mu.Unlock()

	for i := len(snapshot) - 1; i >= 0; i-- {
		if !fct(snapshot[i]) {
			return
		}
	}
}

func (d *deque) Remove(connID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, r := range d.records {
		if r.Conn.ID() == connID {
			d.records = append(d.records[:i], d.records[i+1:]...)
			return true
		}
	}

	return false
}

func (d *deque) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}
