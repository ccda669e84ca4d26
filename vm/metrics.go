// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	invocations       prometheus.Counter
	invocationsFailed prometheus.Counter
	stateChanges      prometheus.Counter
	eventsDropped     prometheus.Counter
	commitLatency     prometheus.Histogram
}

func newMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		invocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "invocations",
			Help:      "number of committed invocations",
		}),
		invocationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "invocations_failed",
			Help:      "number of aborted invocations",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "state_changes",
			Help:      "number of keys written by committed invocations",
		}),
		eventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "events_dropped",
			Help:      "number of events not delivered to slow subscribers",
		}),
		commitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vm",
			Name:      "commit_latency",
			Help:      "time spent writing a committed invocation (ns)",
			Buckets:   prometheus.ExponentialBuckets(1_000, 4, 10),
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.invocations),
		r.Register(m.invocationsFailed),
		r.Register(m.stateChanges),
		r.Register(m.eventsDropped),
		r.Register(m.commitLatency),
	)
	return m, errs.Err
}
