/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package client builds Kubernetes clients for reading node information.
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvKubeconfig is the environment variable naming the kubeconfig file.
const EnvKubeconfig = "KUBECONFIG"

var (
	clientOnce   sync.Once
	cachedClient kubernetes.Interface
	clientErr    error
)

// GetKubeClient returns a process-wide client built from the default kubeconfig
// discovery, creating it on first call.
func GetKubeClient() (kubernetes.Interface, error) {
	clientOnce.Do(func() {
		cachedClient, clientErr = BuildKubeClient("")
	})
	return cachedClient, clientErr
}

// ResolveKubeconfig returns the kubeconfig path to use. An explicit path wins,
// then KUBECONFIG, then ~/.kube/config if it exists. An empty result means
// in-cluster configuration.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv(EnvKubeconfig); env != "" {
		return env
	}
	def := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(def); err == nil {
		return def
	}
	return ""
}

// BuildKubeClient creates a client from kubeconfig, bypassing the cached client.
// See ResolveKubeconfig for how an empty path is resolved.
func BuildKubeClient(kubeconfig string) (kubernetes.Interface, error) {
	config, err := clientcmd.BuildConfigFromFlags("", ResolveKubeconfig(kubeconfig))
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config: %w", err)
	}

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, nil
}
