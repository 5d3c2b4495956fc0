/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package logger_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/kvnode/logger"
	libfld "github.com/nabbar/kvnode/logger/fields"
	liblvl "github.com/nabbar/kvnode/logger/level"
)

var _ = Describe("Logger", func() {
	Describe("New", func() {
		It("defaults to InfoLevel", func() {
			l := logger.New()
			Expect(l.GetLevel()).To(Equal(liblvl.InfoLevel))
		})
	})

	Describe("SetLevel/GetLevel", func() {
		It("round-trips", func() {
			l := logger.New()
			l.SetLevel(liblvl.DebugLevel)
			Expect(l.GetLevel()).To(Equal(liblvl.DebugLevel))
		})
	})

	Describe("SetFields/GetFields", func() {
		It("round-trips", func() {
			l := logger.New()
			l.SetFields(libfld.New().Add("node", "n1"))
			Expect(l.GetFields()).To(HaveKeyWithValue("node", "n1"))
		})
	})

	Describe("Clone", func() {
		It("produces an independent logger with the same level and fields", func() {
			l := logger.New()
			l.SetLevel(liblvl.WarnLevel)
			l.SetFields(libfld.New().Add("a", 1))

			c := l.Clone()
			Expect(c.GetLevel()).To(Equal(liblvl.WarnLevel))
			Expect(c.GetFields()).To(HaveKeyWithValue("a", 1))

			c.SetLevel(liblvl.DebugLevel)
			Expect(l.GetLevel()).To(Equal(liblvl.WarnLevel))
		})
	})

	Describe("CheckError", func() {
		It("reports false and stays silent-ish on success", func() {
			l := logger.New()
			Expect(l.CheckError(liblvl.ErrorLevel, liblvl.NilLevel, "op", nil)).To(BeFalse())
		})

		It("reports true when given a non-nil error", func() {
			l := logger.New()
			Expect(l.CheckError(liblvl.ErrorLevel, liblvl.InfoLevel, "op", errors.New("boom"))).To(BeTrue())
		})
	})

	Describe("package default", func() {
		It("lazily builds a default logger", func() {
			Expect(logger.GetDefault()).ToNot(BeNil())
		})

		It("honors RegisterDefault", func() {
			custom := logger.New()
			custom.SetLevel(liblvl.DebugLevel)
			logger.RegisterDefault(custom)
			Expect(logger.GetDefault().GetLevel()).To(Equal(liblvl.DebugLevel))
		})
	})
})
