/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/osrange/pkg/defaults"
	"github.com/NVIDIA/osrange/pkg/host"
	"github.com/NVIDIA/osrange/pkg/osrange"
	"github.com/NVIDIA/osrange/pkg/rule"
	"github.com/NVIDIA/osrange/pkg/serializer"
)

func nodesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "nodes",
		EnableShellCompletion: true,
		Usage:                 "Check the operating system of every Kubernetes node",
		Description: `Check the operating system reported by each cluster node
(status.nodeInfo.operatingSystem) against the allow-list and print a report.

Exits 1 when any node is outside the allowed range or could not be checked.

Examples:
  osrange nodes --allowed linux
  osrange nodes --selector nvidia.com/gpu.present=true --config rule.yaml --format table`,
		Flags: []cli.Flag{
			allowedFlag(),
			configFlag(),
			kubeconfigFlag(),
			&cli.StringFlag{
				Name:    "selector",
				Aliases: []string{"l"},
				Usage:   "label selector restricting the nodes to check",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: defaults.NodeConcurrency,
				Usage: "number of nodes checked in parallel",
			},
			outputFlag(),
			formatFlag(string(serializer.FormatYAML)),
			metricsFileFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			allowed, err := resolveAllowed(cmd)
			if err != nil {
				return err
			}

			cs, err := newKubeClient(cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to create kubernetes client: %w", err)
			}

			report, err := validateNodes(ctx, cs, cmd.String("selector"), allowed, int(cmd.Int("concurrency")))
			if err != nil {
				return err
			}
			writeMetrics(cmd)

			if err := writeReport(ctx, cmd, format, report); err != nil {
				return err
			}

			if report.Summary.Status != osrange.StatusPass {
				return cli.Exit(fmt.Sprintf("%d of %d nodes are not in the allowed operating system range",
					report.Summary.Total-report.Summary.Passed, report.Summary.Total), ExitFail)
			}
			return nil
		},
	}
}

type nodeResult struct {
	res *rule.Result
	err error
}

// validateNodes runs the rule against every node matching selector, at most
// limit at a time. Results are ordered by node name.
func validateNodes(ctx context.Context, cs kubernetes.Interface, selector, allowed string, limit int) (*rule.NodeReport, error) {
	listCtx, cancel := context.WithTimeout(ctx, defaults.KubernetesTimeout)
	nodes, err := host.ListNodes(listCtx, cs, selector)
	cancel()
	if err != nil {
		return nil, err
	}
	slog.Debug("validating nodes", "count", len(nodes), "selector", selector)

	slices.SortFunc(nodes, func(a, b corev1.Node) int {
		return strings.Compare(a.Name, b.Name)
	})

	if limit < 1 {
		limit = 1
	}

	results := make([]nodeResult, len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range nodes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			node := &nodes[i]
			helper := host.NewEvaluator(&host.NodeProperties{Node: node},
				host.WithLogger(slog.Default().With("node", node.Name)))

			r := &rule.MultipleOSRule{RequiredOSs: allowed, Version: version}
			res, err := r.Execute(gctx, helper)
			results[i] = nodeResult{res: res, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := rule.NewNodeReport(version)
	for i, nr := range results {
		report.Add(nodes[i].Name, nr.res, nr.err)
	}
	report.Finalize()

	return report, nil
}
