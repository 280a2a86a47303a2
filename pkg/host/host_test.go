/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package host

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		expr    string
		want    string
		wantErr bool
	}{
		{expr: "${os.name}", want: "os.name"},
		{expr: "  ${ os.arch }  ", want: "os.arch"},
		{expr: "${env.HOME}", want: "env.HOME"},
		{expr: "os.name", wantErr: true},
		{expr: "${}", wantErr: true},
		{expr: "${os.name", wantErr: true},
		{expr: "${a${b}}", wantErr: true},
		{expr: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseExpression(tt.expr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExpression)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOSName(t *testing.T) {
	assert.Equal(t, "Linux", OSName("linux"))
	assert.Equal(t, "Mac OS X", OSName("darwin"))
	assert.Equal(t, "Windows", OSName("windows"))
	assert.Equal(t, "plan9", OSName("plan9"))
}

func TestRuntimeProperties(t *testing.T) {
	ctx := context.Background()
	env := map[string]string{"BUILD_OS": "linux"}
	p := &RuntimeProperties{
		GOOS:   "darwin",
		GOARCH: "arm64",
		LookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	}

	v, err := p.Property(ctx, PropOSName)
	require.NoError(t, err)
	assert.Equal(t, "Mac OS X", v)

	v, err = p.Property(ctx, PropOSArch)
	require.NoError(t, err)
	assert.Equal(t, "arm64", v)

	v, err = p.Property(ctx, "env.BUILD_OS")
	require.NoError(t, err)
	assert.Equal(t, "linux", v)

	_, err = p.Property(ctx, "env.MISSING")
	assert.ErrorIs(t, err, ErrUnknownProperty)

	_, err = p.Property(ctx, "user.name")
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestRuntimeProperties_Defaults(t *testing.T) {
	v, err := NewRuntimeProperties().Property(context.Background(), PropOSName)
	require.NoError(t, err)
	assert.Equal(t, OSName(runtime.GOOS), v)
}

func TestRuntimeProperties_Override(t *testing.T) {
	p := NewRuntimeProperties().WithOverride(PropOSName, "Solaris").WithOverride(PropOSArch, "")

	v, err := p.Property(context.Background(), PropOSName)
	require.NoError(t, err)
	assert.Equal(t, "Solaris", v)

	v, err = p.Property(context.Background(), PropOSArch)
	require.NoError(t, err)
	assert.Equal(t, runtime.GOARCH, v)
}

func TestRuntimeProperties_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRuntimeProperties().Property(ctx, PropOSName)
	assert.ErrorIs(t, err, context.Canceled)
}

func testNode(name, os, arch, image string) *corev1.Node {
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: map[string]string{"kubernetes.io/os": os},
		},
		Status: corev1.NodeStatus{
			NodeInfo: corev1.NodeSystemInfo{
				OperatingSystem: os,
				Architecture:    arch,
				OSImage:         image,
			},
		},
	}
}

func TestNodeProperties(t *testing.T) {
	ctx := context.Background()
	cs := fake.NewClientset(testNode("gpu-1", "linux", "amd64", "Ubuntu 24.04 LTS"))
	p := &NodeProperties{ClientSet: cs, NodeName: "gpu-1"}

	v, err := p.Property(ctx, PropOSName)
	require.NoError(t, err)
	assert.Equal(t, "linux", v)

	v, err = p.Property(ctx, PropOSImage)
	require.NoError(t, err)
	assert.Equal(t, "Ubuntu 24.04 LTS", v)

	_, err = p.Property(ctx, "env.HOME")
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestNodeProperties_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := (&NodeProperties{}).Property(ctx, PropOSName)
	assert.Error(t, err)

	_, err = (&NodeProperties{ClientSet: fake.NewClientset()}).Property(ctx, PropOSName)
	assert.Error(t, err)

	_, err = (&NodeProperties{ClientSet: fake.NewClientset(), NodeName: "missing"}).Property(ctx, PropOSName)
	assert.ErrorContains(t, err, `failed to get node "missing"`)

	_, err = (&NodeProperties{Node: testNode("n", "", "amd64", "")}).Property(ctx, PropOSName)
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestListNodes(t *testing.T) {
	cs := fake.NewClientset(
		testNode("a", "linux", "amd64", ""),
		testNode("b", "windows", "amd64", ""),
	)

	nodes, err := ListNodes(context.Background(), cs, "")
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	nodes, err = ListNodes(context.Background(), cs, "kubernetes.io/os=windows")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "b", nodes[0].Name)
}

type failingSource struct{ err error }

func (f failingSource) Property(context.Context, string) (string, error) { return "", f.err }

func TestEvaluator(t *testing.T) {
	ctx := context.Background()

	e := NewEvaluator(NewRuntimeProperties().WithOverride(PropOSName, "Linux"))
	v, err := e.Evaluate(ctx, ExprOSName)
	require.NoError(t, err)
	assert.Equal(t, "Linux", v)
	assert.NotNil(t, e.Log())

	_, err = e.Evaluate(ctx, "os.name")
	assert.ErrorIs(t, err, ErrInvalidExpression)

	boom := errors.New("boom")
	_, err = NewEvaluator(failingSource{err: boom}).Evaluate(ctx, ExprOSName)
	assert.ErrorIs(t, err, boom)

	_, err = NewEvaluator(nil).Evaluate(ctx, ExprOSName)
	assert.ErrorIs(t, err, ErrUnknownProperty)
}
