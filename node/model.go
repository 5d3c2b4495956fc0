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

// Package node pools connections to a single remote endpoint and
// dispatches operations over them, applying admission control, passive
// health detection, and idle-connection reaping.
package node

import (
	"context"
	"reflect"
	"sync"
	"time"

	liberr "github.com/nabbar/kvnode/errors"
	liblog "github.com/nabbar/kvnode/logger"
	"github.com/nabbar/kvnode/node/idlepool"
	"github.com/nabbar/kvnode/node/inflight"
	"github.com/nabbar/kvnode/node/recentclose"
	"github.com/nabbar/kvnode/permit"
)

const (
	reaperInterval     = 5 * time.Second
	reaperInitialDelay = time.Second

	healthInterval     = 500 * time.Millisecond
	healthInitialDelay = time.Second
	healthWindow       = 3 * time.Second

	healthCloseThreshold = 5

	// permitCeiling is the hard ceiling the permit counter is built with,
	// regardless of the node's configured MaxConnections. It must stay
	// fixed for the permit's lifetime (see permit.New) while the node's
	// own "current size" moves within it, so SetMaxConnections always has
	// parked headroom to grow into, even when MaxConnections started out
	// bounded well below this ceiling.
	permitCeiling = 1 << 20
)

var (
	_ Node             = (*nd)(nil)
	_ ResponseListener = (*nd)(nil)
)

type nd struct {
	mu  sync.Mutex // guards lifecycle transitions and config mutators
	lmu sync.Mutex // guards the listener slice

	cfg Config
	log liblog.Logger

	state     State
	listeners []StateListener

	permit   permit.Permit
	idle     idlepool.Pool
	inflight inflight.Table
	recent   recentclose.Log
	metrics  *metrics

	cancelBackground context.CancelFunc
	bgWG             sync.WaitGroup
}

// New builds a Node from cfg without starting it. Call Start to open
// connections and begin background maintenance.
func New(cfg Config) (Node, liberr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg = cfg.withDefaults()

	size := int64(cfg.MaxConnections)
	if cfg.MaxConnections <= 0 {
		size = permitCeiling
	}

	return &nd{
		cfg:      cfg,
		log:      liblog.New(),
		state:    Created,
		permit:   permit.New(size, permitCeiling),
		idle:     idlepool.New(),
		inflight: inflight.New(),
		recent:   recentclose.New(),
		metrics:  newMetrics(cfg.RemoteAddress, cfg.RemotePort),
	}, nil
}

func (n *nd) GetNodeState() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *nd) GetRemoteAddress() string {
	return n.cfg.RemoteAddress
}

func (n *nd) GetRemotePort() int {
	return n.cfg.RemotePort
}

func (n *nd) AddStateListener(l StateListener) {
	if l == nil {
		return
	}

	n.lmu.Lock()
	defer n.lmu.Unlock()
	n.listeners = append(n.listeners, l)
}

func (n *nd) RemoveStateListener(l StateListener) {
	if l == nil {
		return
	}

	n.lmu.Lock()
	defer n.lmu.Unlock()

	ptr := reflectFuncPtr(l)
	out := n.listeners[:0]
	for _, existing := range n.listeners {
		if reflectFuncPtr(existing) != ptr {
			out = append(out, existing)
		}
	}
	n.listeners = out
}

func (n *nd) notifyState(s State) {
	n.lmu.Lock()
	listeners := make([]StateListener, len(n.listeners))
	copy(listeners, n.listeners)
	n.lmu.Unlock()

	for _, l := range listeners {
		l(n, s)
	}
}

func (n *nd) setState(s State) {
	n.state = s
	n.metrics.state.Set(float64(s))
	n.notifyState(s)
}

// refreshGauges syncs the point-in-time Prometheus gauges with the
// pool's current occupancy. Counters are updated inline where the
// corresponding event occurs instead.
func (n *nd) refreshGauges() {
	n.metrics.inFlight.Set(float64(n.inflight.Len()))
	n.metrics.idle.Set(float64(n.idle.Len()))
	n.metrics.permits.Set(float64(n.permit.Available()))
}

// reflectFuncPtr identifies a StateListener value for removal. Go funcs
// are not comparable, so identity is taken from the underlying code
// pointer; this matches a listener removed with the same func value it
// was added with, not a different closure with equivalent behavior.
func reflectFuncPtr(l StateListener) uintptr {
	return reflect.ValueOf(l).Pointer()
}
