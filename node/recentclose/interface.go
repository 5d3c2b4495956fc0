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

// Package recentclose keeps a sliding window of connection-close
// timestamps. The health monitor uses the count of entries still inside
// the window to decide whether an endpoint looks unhealthy; entries
// older than the window are pruned lazily, by CountSince, rather than by
// a dedicated timer.
package recentclose

import "time"

// Entry records a single connection close.
type Entry struct {
	ConnID string
	At     time.Time
}

// Log is a thread-safe FIFO of recent close entries, bounded by age
// rather than by count.
type Log interface {
	// Record appends a close event at the given time.
	Record(connID string, at time.Time)

	// CountSince purges entries older than now-window and returns how
	// many remain.
	CountSince(now time.Time, window time.Duration) int

	// Reset discards every recorded entry, used when an endpoint
	// recovers and the window should start clean.
	Reset()
}

func New() Log {
	return &slidingLog{}
}
