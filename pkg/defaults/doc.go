/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package defaults provides centralized configuration constants for osrange.
//
// This package defines timeout values, limits and other configuration
// defaults shared by the CLI, the rule handler and the HTTP server.
//
// # Timeout Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - Kubernetes timeouts: For K8s API operations
//
// # Usage
//
//	import "github.com/NVIDIA/osrange/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.KubernetesTimeout)
//	defer cancel()
package defaults
