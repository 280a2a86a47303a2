/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the osrange tool.
//
// # Overview
//
// osrange checks that an operating system name is within an allowed range,
// given as a comma-separated allow-list. It is meant to gate builds and
// deployments on machines or cluster nodes running a supported OS.
//
// # Commands
//
// check - Validate this machine, or one node:
//
//	osrange check --allowed "linux, mac os x"
//	osrange check --os windows --allowed linux --format json
//	osrange check --config rule.yaml --output result.yaml
//	osrange check --node gpu-node-1 --kubeconfig ~/.kube/config --allowed linux
//
// nodes - Validate every node of a Kubernetes cluster:
//
//	osrange nodes --allowed linux --selector nvidia.com/gpu.present=true
//	osrange nodes --config rule.yaml --concurrency 16 --format table
//
// serve - Run the validation HTTP API:
//
//	osrange serve --port 8080
//	curl "localhost:8080/v1/validate?os=linux&allowed=linux,windows"
//
// # Rule Files
//
// The --config/-c flag reads the allow-list from a Kubernetes-style resource:
//
//	kind: OSRangeRule
//	apiVersion: osrange.nvidia.com/v1alpha1
//	metadata:
//	  name: build-hosts
//	spec:
//	  requiredOSs: "linux, mac os x"
//
// An explicit --allowed (or OSRANGE_ALLOWED) takes precedence over the file.
//
// # Environment Variables
//
//   - OSRANGE_ALLOWED: default for --allowed
//   - OSRANGE_OS: default for check --os
//   - OSRANGE_DEBUG: enable debug logging
//   - LOG_LEVEL: log level (debug, info, warn, error)
//   - KUBECONFIG: kubeconfig used by check --node and nodes
//   - PORT: listen port for serve
//
// # Exit Codes
//
//	0  Operating system is in the allowed range
//	1  Operating system is not in the range, the allow-list is empty, or an error occurred
//	2  Interrupted
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/osrange/pkg/cli.version=1.0.0'"
package cli
