/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
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

package fields_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libfld "github.com/nabbar/kvnode/logger/fields"
)

var _ = Describe("Fields", func() {
	Describe("Add", func() {
		It("returns a new map leaving the receiver untouched", func() {
			a := libfld.New().Add("a", 1)
			b := a.Add("b", 2)

			Expect(a).To(HaveLen(1))
			Expect(b).To(HaveLen(2))
			Expect(b["a"]).To(Equal(1))
			Expect(b["b"]).To(Equal(2))
		})
	})

	Describe("Merge", func() {
		It("combines two field sets, the argument winning on key collision", func() {
			a := libfld.New().Add("x", 1).Add("y", 2)
			b := libfld.New().Add("y", 3)

			m := a.Merge(b)
			Expect(m["x"]).To(Equal(1))
			Expect(m["y"]).To(Equal(3))
		})

		It("returns the non-empty side untouched when the other is empty", func() {
			a := libfld.New().Add("x", 1)
			Expect(a.Merge(nil)).To(Equal(a))
		})
	})

	Describe("Clean", func() {
		It("drops the named keys", func() {
			a := libfld.New().Add("x", 1).Add("y", 2)
			Expect(a.Clean("x")).To(Equal(libfld.Fields{"y": 2}))
		})

		It("is a no-op with no keys", func() {
			a := libfld.New().Add("x", 1)
			Expect(a.Clean()).To(Equal(a))
		})
	})

	Describe("Logrus", func() {
		It("converts to logrus.Fields with the same content", func() {
			a := libfld.New().Add("x", 1)
			l := a.Logrus()
			Expect(l).To(HaveKeyWithValue("x", 1))
		})
	})
})
