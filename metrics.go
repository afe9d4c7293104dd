// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks interning during a build.
type Metrics struct {
	// Interned counts every Intern call that succeeded.
	Interned prometheus.Counter
	// Deduplicated counts Intern calls answered by an existing value.
	Deduplicated prometheus.Counter
	// BlobBytes is the current size of the value blob.
	BlobBytes prometheus.Gauge
}

// NewMetrics creates a Metrics, registering it with reg if reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Interned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vstore",
			Name:      "interned_total",
			Help:      "Values passed to Intern.",
		}),
		Deduplicated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vstore",
			Name:      "deduplicated_total",
			Help:      "Interned values that matched a previously stored value.",
		}),
		BlobBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vstore",
			Name:      "blob_bytes",
			Help:      "Size of the value blob being built.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Interned, m.Deduplicated, m.BlobBytes)
	}
	return m
}
