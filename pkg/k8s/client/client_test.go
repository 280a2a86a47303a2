/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test
contexts:
- context:
    cluster: test
    user: test
  name: test
current-context: test
users:
- name: test
  user:
    token: abc
`

func TestResolveKubeconfig(t *testing.T) {
	t.Setenv(EnvKubeconfig, "/from/env")

	assert.Equal(t, "/explicit", ResolveKubeconfig("/explicit"))
	assert.Equal(t, "/from/env", ResolveKubeconfig(""))
}

func TestBuildKubeClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(testKubeconfig), 0o600))

	cs, err := BuildKubeClient(path)
	require.NoError(t, err)
	assert.NotNil(t, cs)
}

func TestBuildKubeClient_MissingFile(t *testing.T) {
	_, err := BuildKubeClient(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "failed to build kube config")
}
