/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package node_test

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/kvnode/node"
)

var _ = Describe("Node end-to-end scenarios", func() {
	It("blocks a second Execute until the first releases its permit, in submission order", func() {
		d := &fakeDialer{}
		n, err := node.New(node.Config{
			MinConnections:        0,
			MaxConnections:        1,
			BlockOnMaxConnections: true,
			Dialer:                d,
		})
		Expect(err).To(BeNil())
		Expect(n.Start()).To(BeNil())

		rl, ok := n.(node.ResponseListener)
		Expect(ok).To(BeTrue())

		op1 := &fakeOp{}
		Expect(n.Execute(op1, []byte("a"))).To(BeTrue())

		op2Done := make(chan bool, 1)
		go func() {
			op2 := &fakeOp{}
			op2Done <- n.Execute(op2, []byte("b"))
		}()

		Consistently(op2Done, 100*time.Millisecond).ShouldNot(Receive())

		conns := d.dialedConns()
		Expect(conns).NotTo(BeEmpty())
		rl.OnSuccess(conns[0], "pong")
		Eventually(op1.IsDone).Should(BeTrue())

		Eventually(op2Done, time.Second).Should(Receive(BeTrue()))
	})

	It("reaps idle connections down toward the floor once they age past the idle timeout", func() {
		d := &fakeDialer{}
		n, err := node.New(node.Config{
			MinConnections: 1,
			MaxConnections: 5,
			IdleTimeout:    50 * time.Millisecond,
			Dialer:         d,
		})
		Expect(err).To(BeNil())
		Expect(n.Start()).To(BeNil())

		rl, ok := n.(node.ResponseListener)
		Expect(ok).To(BeTrue())

		ops := make([]*fakeOp, 4)
		for i := range ops {
			ops[i] = &fakeOp{}
			Expect(n.Execute(ops[i], []byte("x"))).To(BeTrue())
		}

		for _, c := range d.dialedConns() {
			rl.OnSuccess(c, "pong")
		}
		for _, op := range ops {
			Eventually(op.IsDone).Should(BeTrue())
		}

		Eventually(func() int {
			open := 0
			for _, c := range d.dialedConns() {
				if c.IsOpen() {
					open++
				}
			}
			return open
		}, 7*time.Second, 100*time.Millisecond).Should(Equal(1))
	})

	It("demotes to health-checking after a burst of disconnects and recovers once a probe succeeds", func() {
		d := &fakeDialer{}
		n, err := node.New(node.Config{
			MinConnections: 0,
			MaxConnections: 2,
			Dialer:         d,
		})
		Expect(err).To(BeNil())
		Expect(n.Start()).To(BeNil())

		for i := 0; i < 6; i++ {
			op := &fakeOp{}
			Expect(n.Execute(op, []byte("x"))).To(BeTrue())

			conns := d.dialedConns()
			active := conns[len(conns)-1]
			Expect(active.Close()).To(BeNil())
		}

		// The endpoint is unreachable for the first probe, then comes back.
		atomic.StoreInt64(&d.failNext, 1)

		Eventually(n.GetNodeState, 3*time.Second, 50*time.Millisecond).Should(Equal(node.HealthChecking))
		Eventually(n.GetNodeState, 3*time.Second, 50*time.Millisecond).Should(Equal(node.Running))
	})

	It("demotes to health-checking from a burst of idle (not in-flight) connection deaths", func() {
		d := &fakeDialer{}
		n, err := node.New(node.Config{
			MinConnections: 0,
			MaxConnections: 2,
			Dialer:         d,
		})
		Expect(err).To(BeNil())
		Expect(n.Start()).To(BeNil())

		rl, ok := n.(node.ResponseListener)
		Expect(ok).To(BeTrue())

		for i := 0; i < 6; i++ {
			op := &fakeOp{}
			Expect(n.Execute(op, []byte("x"))).To(BeTrue())

			conns := d.dialedConns()
			active := conns[len(conns)-1]

			// Resolve the operation so the connection returns to the idle
			// pool (swapping its close listener to onIdleClose), then kill
			// it while it is sitting idle, not while it carries a request.
			rl.OnSuccess(active, "pong")
			Eventually(op.IsDone).Should(BeTrue())
			Expect(active.Close()).To(BeNil())
		}

		// The endpoint stays unreachable, so the health probe fails.
		atomic.StoreInt64(&d.failNext, 1<<30)

		Eventually(n.GetNodeState, 3*time.Second, 50*time.Millisecond).Should(Equal(node.HealthChecking))
	})

	It("fails the operation with an unexpected-close error when the connection dies mid-flight", func() {
		d := &fakeDialer{}
		n, err := node.New(node.Config{MinConnections: 0, MaxConnections: 1, Dialer: d})
		Expect(err).To(BeNil())
		Expect(n.Start()).To(BeNil())

		op := &fakeOp{}
		Expect(n.Execute(op, []byte("x"))).To(BeTrue())

		conns := d.dialedConns()
		Expect(conns).To(HaveLen(1))
		Expect(conns[0].Close()).To(BeNil())

		Eventually(op.IsDone).Should(BeTrue())
		Expect(op.errSnapshot()).To(HaveOccurred())
	})
})
