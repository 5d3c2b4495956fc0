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

package idlepool_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/kvnode/node/idlepool"
	"github.com/nabbar/kvnode/node/transport"
)

type fakeConn struct {
	id   string
	open bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, open: true}
}

func (f *fakeConn) Write(p []byte) (int, error)      { return len(p), nil }
func (f *fakeConn) ID() string                        { return f.id }
func (f *fakeConn) IsOpen() bool                       { return f.open }
func (f *fakeConn) Close() error                       { f.open = false; return nil }
func (f *fakeConn) RegisterFuncClose(_ func(c transport.Conn)) {}

var _ transport.Conn = (*fakeConn)(nil)

var _ = Describe("Pool", func() {
	It("pops in LIFO order", func() {
		p := idlepool.New()

		p.OfferFirst(idlepool.Record{Conn: newFakeConn("a"), IdleSince: time.Now()})
		p.OfferFirst(idlepool.Record{Conn: newFakeConn("b"), IdleSince: time.Now()})
		p.OfferFirst(idlepool.Record{Conn: newFakeConn("c"), IdleSince: time.Now()})

		Expect(p.Len()).To(Equal(3))

		r, ok := p.Poll()
		Expect(ok).To(BeTrue())
		Expect(r.Conn.ID()).To(Equal("c"))

		r, ok = p.Poll()
		Expect(ok).To(BeTrue())
		Expect(r.Conn.ID()).To(Equal("b"))

		r, ok = p.Poll()
		Expect(ok).To(BeTrue())
		Expect(r.Conn.ID()).To(Equal("a"))

		_, ok = p.Poll()
		Expect(ok).To(BeFalse())
	})

	It("iterates oldest-first and can stop early", func() {
		p := idlepool.New()

		now := time.Now()
		p.OfferFirst(idlepool.Record{Conn: newFakeConn("oldest"), IdleSince: now.Add(-3 * time.Second)})
		p.OfferFirst(idlepool.Record{Conn: newFakeConn("middle"), IdleSince: now.Add(-2 * time.Second)})
		p.OfferFirst(idlepool.Record{Conn: newFakeConn("newest"), IdleSince: now})

		var seen []string
		p.DescendingIterator(func(r idlepool.Record) bool {
			seen = append(seen, r.Conn.ID())
			return true
		})
		Expect(seen).To(Equal([]string{"oldest", "middle", "newest"}))

		seen = nil
		p.DescendingIterator(func(r idlepool.Record) bool {
			seen = append(seen, r.Conn.ID())
			return false
		})
		Expect(seen).To(Equal([]string{"oldest"}))
	})

	It("removes a record by connection id", func() {
		p := idlepool.New()

		p.OfferFirst(idlepool.Record{Conn: newFakeConn("a"), IdleSince: time.Now()})
		p.OfferFirst(idlepool.Record{Conn: newFakeConn("b"), IdleSince: time.Now()})

		Expect(p.Remove("a")).To(BeTrue())
		Expect(p.Len()).To(Equal(1))
		Expect(p.Remove("a")).To(BeFalse())

		r, ok := p.Poll()
		Expect(ok).To(BeTrue())
		Expect(r.Conn.ID()).To(Equal("b"))
	})
})
