// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"time"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/ast"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/diag"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records statistics about the files checked by one run of the tool.
// These are kept on a private registry, and written out in the Prometheus text
// format (e.g. for collection by a node exporter).
type Metrics struct {
	registry *prometheus.Registry
	// Files checked, by outcome
	files *prometheus.CounterVec
	// Diagnostics reported, by kind
	diagnostics *prometheus.CounterVec
	// Statements parsed, by section
	statements *prometheus.CounterVec
	// Time taken to check each file
	duration prometheus.Histogram
}

// NewMetrics constructs an empty set of metrics.
func NewMetrics() *Metrics {
	var (
		registry = prometheus.NewRegistry()
		factory  = promauto.With(registry)
	)
	//
	return &Metrics{
		registry: registry,
		files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fzn_files_checked_total",
				Help: "Total number of model files checked",
			},
			[]string{"result"},
		),
		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fzn_diagnostics_total",
				Help: "Total number of errors and warnings reported",
			},
			[]string{"kind"},
		),
		statements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fzn_statements_total",
				Help: "Total number of statements parsed",
			},
			[]string{"section"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fzn_check_duration_seconds",
				Help:    "Time taken to check a model file",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}
}

// Observe the outcome of checking one file.
func (p *Metrics) Observe(res fzn.Result, elapsed time.Duration) {
	result := "ok"
	//
	if len(res.Errors) > 0 {
		result = "failed"
	}
	//
	p.files.WithLabelValues(result).Inc()
	p.duration.Observe(elapsed.Seconds())
	//
	for _, diags := range [][]diag.Error{res.Errors, res.Warnings} {
		for _, d := range diags {
			p.diagnostics.WithLabelValues(d.Kind().String()).Inc()
		}
	}
	//
	if res.Root == nil {
		return
	}
	//
	for _, item := range res.Root.Children {
		if item.Kind == ast.ENGINE {
			// Count each group, and the structure
			p.statements.WithLabelValues("group").Add(float64(len(item.Children) - 1))
			p.statements.WithLabelValues("structure").Inc()
		} else {
			p.statements.WithLabelValues(item.Kind.String()).Inc()
		}
	}
}

// WriteFile writes these metrics to a given file in the Prometheus text format.
// The file is replaced atomically.
func (p *Metrics) WriteFile(filename string) error {
	return prometheus.WriteToTextfile(filename, p.registry)
}
