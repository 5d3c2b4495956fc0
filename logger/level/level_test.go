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

package level_test

import (
	"github.com/sirupsen/logrus"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liblvl "github.com/nabbar/kvnode/logger/level"
)

var _ = Describe("Level", func() {
	Describe("ordering", func() {
		It("orders from most to least severe", func() {
			Expect(liblvl.PanicLevel).To(BeNumerically("<", liblvl.FatalLevel))
			Expect(liblvl.FatalLevel).To(BeNumerically("<", liblvl.ErrorLevel))
			Expect(liblvl.ErrorLevel).To(BeNumerically("<", liblvl.WarnLevel))
			Expect(liblvl.WarnLevel).To(BeNumerically("<", liblvl.InfoLevel))
			Expect(liblvl.InfoLevel).To(BeNumerically("<", liblvl.DebugLevel))
			Expect(liblvl.DebugLevel).To(BeNumerically("<", liblvl.NilLevel))
		})
	})

	Describe("String", func() {
		It("renders the expected human names", func() {
			Expect(liblvl.ErrorLevel.String()).To(Equal("Error"))
			Expect(liblvl.PanicLevel.String()).To(Equal("Critical"))
			Expect(liblvl.NilLevel.String()).To(Equal(""))
		})
	})

	Describe("Logrus", func() {
		It("maps onto the matching logrus level", func() {
			Expect(liblvl.ErrorLevel.Logrus()).To(Equal(logrus.ErrorLevel))
			Expect(liblvl.DebugLevel.Logrus()).To(Equal(logrus.DebugLevel))
		})

		It("disables output for NilLevel", func() {
			Expect(int64(liblvl.NilLevel.Logrus())).To(BeNumerically(">", int64(logrus.TraceLevel)))
		})
	})

	Describe("Parse", func() {
		It("is case-insensitive", func() {
			Expect(liblvl.Parse("ERROR")).To(Equal(liblvl.ErrorLevel))
			Expect(liblvl.Parse("warning")).To(Equal(liblvl.WarnLevel))
		})

		It("defaults unknown input to InfoLevel", func() {
			Expect(liblvl.Parse("nonsense")).To(Equal(liblvl.InfoLevel))
			Expect(liblvl.Parse("")).To(Equal(liblvl.InfoLevel))
		})
	})

	Describe("ListLevels", func() {
		It("returns the six parseable levels, lowercased", func() {
			Expect(liblvl.ListLevels()).To(ConsistOf("critical", "fatal", "error", "warning", "info", "debug"))
		})
	})
})
