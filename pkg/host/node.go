/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package host

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// NodeProperties resolves properties from a Kubernetes node's status.
//
// os.name maps to status.nodeInfo.operatingSystem, os.arch to
// status.nodeInfo.architecture and os.image to status.nodeInfo.osImage.
type NodeProperties struct {
	ClientSet kubernetes.Interface
	NodeName  string

	// Node, when set, is used instead of fetching NodeName from the API server.
	Node *corev1.Node
}

// Property implements PropertySource.
func (n *NodeProperties) Property(ctx context.Context, name string) (string, error) {
	node, err := n.node(ctx)
	if err != nil {
		return "", err
	}

	info := node.Status.NodeInfo
	var v string
	switch name {
	case PropOSName:
		v = info.OperatingSystem
	case PropOSArch:
		v = info.Architecture
	case PropOSImage:
		v = info.OSImage
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}

	if v == "" {
		return "", fmt.Errorf("%w: %s is not reported by node %s", ErrUnknownProperty, name, node.Name)
	}
	return v, nil
}

func (n *NodeProperties) node(ctx context.Context) (*corev1.Node, error) {
	if n.Node != nil {
		return n.Node, nil
	}
	if n.ClientSet == nil {
		return nil, fmt.Errorf("kubernetes client is not configured")
	}
	if n.NodeName == "" {
		return nil, fmt.Errorf("node name is required")
	}

	node, err := n.ClientSet.CoreV1().Nodes().Get(ctx, n.NodeName, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get node %q: %w", n.NodeName, err)
	}
	return node, nil
}

// ListNodes returns the cluster nodes matching labelSelector (all nodes when empty).
func ListNodes(ctx context.Context, cs kubernetes.Interface, labelSelector string) ([]corev1.Node, error) {
	list, err := cs.CoreV1().Nodes().List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	return list.Items, nil
}
