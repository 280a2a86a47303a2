/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package rule

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const statusError = "error"

var (
	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osrange_validations_total",
			Help: "Total number of operating system range validations",
		},
		[]string{"status", "reason"}, // pass, fail or error
	)

	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "osrange_validation_duration_seconds",
			Help:    "Time taken to evaluate and validate the operating system",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 5},
		},
	)
)

// WriteMetrics writes the default registry to path in the Prometheus text format,
// for pickup by a node exporter textfile collector.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}
