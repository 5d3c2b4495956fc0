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

package node

import (
	"context"
	"time"

	liberr "github.com/nabbar/kvnode/errors"
)

// runHealthMonitor ages out the recent-close log and drives the
// RUNNING <-> HEALTH_CHECKING transition on a short fixed delay.
func (n *nd) runHealthMonitor(ctx context.Context) {
	defer n.bgWG.Done()

	timer := time.NewTimer(healthInitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			n.healthTick(ctx)
			n.refreshGauges()
			timer.Reset(healthInterval)
		}
	}
}

func (n *nd) healthTick(ctx context.Context) {
	count := n.recent.CountSince(timeNow(), healthWindow)

	n.mu.Lock()
	state := n.state
	n.mu.Unlock()

	probe := (state == Running && count >= healthCloseThreshold) || state == HealthChecking
	if !probe {
		return
	}

	n.runProbe(ctx, state)
}

// runProbe dials the endpoint directly through the configured Dialer,
// outside the permit system, then immediately closes the result.
func (n *nd) runProbe(ctx context.Context, state State) {
	dialCtx := ctx
	var cancel context.CancelFunc
	if n.cfg.ConnectionTimeout > 0 {
		dialCtx, cancel = context.WithTimeout(ctx, n.cfg.ConnectionTimeout)
		defer cancel()
	}

	conn, err := n.cfg.Dialer.Dial(dialCtx, n.cfg.RemoteAddress, n.cfg.RemotePort, n.cfg.ConnectionTimeout)

	if err == nil {
		_ = conn.Close()
	} else {
		n.metrics.dialErrors.Inc()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	switch {
	case err == nil && state == HealthChecking:
		n.setState(Running)
		n.recent.Reset()
	case err != nil && state == Running:
		n.setState(HealthChecking)
	case err != nil && state == HealthChecking:
		n.log.Entry(n.log.GetLevel(), "health probe failed while health-checking").
			ErrorAdd(true, liberr.New(liberr.HealthProbeFailed.Uint16(), "probe failed", err)).
			Log()
	}
}
