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

package permit_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/kvnode/permit"
)

var _ = Describe("Permit", func() {
	Describe("TryAcquire / Release", func() {
		It("grants up to the configured size and then refuses", func() {
			p := permit.New(2, 2)

			Expect(p.TryAcquire(1)).To(BeTrue())
			Expect(p.TryAcquire(1)).To(BeTrue())
			Expect(p.TryAcquire(1)).To(BeFalse())

			Expect(p.Available()).To(Equal(int64(0)))

			p.Release(1)
			Expect(p.Available()).To(Equal(int64(1)))
			Expect(p.TryAcquire(1)).To(BeTrue())
		})
	})

	Describe("Acquire", func() {
		It("blocks until a permit is released", func() {
			p := permit.New(1, 1)
			Expect(p.TryAcquire(1)).To(BeTrue())

			done := make(chan struct{})
			go func() {
				defer close(done)
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				Expect(p.Acquire(ctx, 1)).To(Succeed())
			}()

			Consistently(done, 50*time.Millisecond).ShouldNot(BeClosed())
			p.Release(1)
			Eventually(done, time.Second).Should(BeClosed())
		})

		It("returns the context error on cancellation", func() {
			p := permit.New(1, 1)
			Expect(p.TryAcquire(1)).To(BeTrue())

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			err := p.Acquire(ctx, 1)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SetSize", func() {
		It("grows capacity up to the ceiling without blocking", func() {
			p := permit.New(1, 4)
			Expect(p.Size()).To(Equal(int64(1)))

			Expect(p.SetSize(context.Background(), 3)).To(Succeed())
			Expect(p.Size()).To(Equal(int64(3)))
			Expect(p.Available()).To(Equal(int64(3)))
		})

		It("shrinks capacity once enough permits are idle", func() {
			p := permit.New(3, 3)
			Expect(p.TryAcquire(1)).To(BeTrue())

			Expect(p.SetSize(context.Background(), 1)).To(Succeed())
			Expect(p.Size()).To(Equal(int64(1)))
			Expect(p.Available()).To(Equal(int64(0)))
		})

		It("blocks a shrink until enough permits become idle", func() {
			p := permit.New(2, 2)
			Expect(p.TryAcquire(1)).To(BeTrue())
			Expect(p.TryAcquire(1)).To(BeTrue())

			done := make(chan struct{})
			go func() {
				defer close(done)
				Expect(p.SetSize(context.Background(), 0)).To(Succeed())
			}()

			Consistently(done, 50*time.Millisecond).ShouldNot(BeClosed())
			p.Release(1)
			p.Release(1)
			Eventually(done, time.Second).Should(BeClosed())
		})
	})
})
