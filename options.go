// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"io"
	"log/slog"
)

// Option configures stores and readers.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	metrics  *Metrics
	capacity int
}

// WithLogger sets an optional logger for progress updates.
// If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithMetrics has a string store record interning activity in m.
func WithMetrics(m *Metrics) Option {
	return func(opts *options) {
		opts.metrics = m
	}
}

// WithInitialCapacity presizes a string store for n distinct values.
func WithInitialCapacity(n int) Option {
	return func(opts *options) {
		opts.capacity = n
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
