/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// Handler timeouts.
const (
	// ValidateTimeout bounds a single /v1/validate request.
	ValidateTimeout = 5 * time.Second
)

// Server defaults.
const (
	ServerPort            = 8080
	ServerRateLimit       = 100 // requests per second
	ServerRateLimitBurst  = 200
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes defaults.
const (
	// KubernetesTimeout bounds a single Kubernetes API call.
	KubernetesTimeout = 30 * time.Second

	// NodeConcurrency is the number of nodes validated in parallel.
	NodeConcurrency = 8
)
