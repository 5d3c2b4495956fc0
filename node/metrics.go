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

package node

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the Prometheus collectors a node reports through.
// Labels carry the remote endpoint so multiple nodes can share a
// registry without colliding.
type metrics struct {
	state       prometheus.Gauge
	inFlight    prometheus.Gauge
	idle        prometheus.Gauge
	permits     prometheus.Gauge
	recentClose prometheus.Counter
	dialErrors  prometheus.Counter
	reaped      prometheus.Counter
}

func newMetrics(address string, port int) *metrics {
	labels := prometheus.Labels{"remote": address, "port": strconv.Itoa(port)}

	return &metrics{
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "kvnode",
			Subsystem:   "node",
			Name:        "state",
			Help:        "Current lifecycle state of the node (0=created,1=running,2=health_checking,3=shutting_down,4=shutdown).",
			ConstLabels: labels,
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "kvnode",
			Subsystem:   "node",
			Name:        "in_flight_operations",
			Help:        "Operations currently dispatched on a connection.",
			ConstLabels: labels,
		}),
		idle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "kvnode",
			Subsystem:   "node",
			Name:        "idle_connections",
			Help:        "Connections currently parked in the idle pool.",
			ConstLabels: labels,
		}),
		permits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "kvnode",
			Subsystem:   "node",
			Name:        "permits_available",
			Help:        "Admission-control permits currently available.",
			ConstLabels: labels,
		}),
		recentClose: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "kvnode",
			Subsystem:   "node",
			Name:        "connection_closes_total",
			Help:        "Connection closes recorded for the passive health window.",
			ConstLabels: labels,
		}),
		dialErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "kvnode",
			Subsystem:   "node",
			Name:        "dial_errors_total",
			Help:        "Failed attempts to open a new connection to the remote endpoint.",
			ConstLabels: labels,
		}),
		reaped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "kvnode",
			Subsystem:   "node",
			Name:        "idle_connections_reaped_total",
			Help:        "Idle connections closed by the reaper for exceeding the idle timeout.",
			ConstLabels: labels,
		}),
	}
}

// Collectors returns every metric so the caller can register them with
// a prometheus.Registerer of its choosing.
func (n *nd) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		n.metrics.state,
		n.metrics.inFlight,
		n.metrics.idle,
		n.metrics.permits,
		n.metrics.recentClose,
		n.metrics.dialErrors,
		n.metrics.reaped,
	}
}
