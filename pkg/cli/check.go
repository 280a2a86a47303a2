/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/osrange/pkg/host"
	"github.com/NVIDIA/osrange/pkg/rule"
	"github.com/NVIDIA/osrange/pkg/serializer"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Check that the operating system is in the allowed range",
		Description: `Check the operating system of this machine, or of a Kubernetes node,
against a comma-separated allow-list. Names are compared case-insensitively
after trimming surrounding whitespace.

Exits 0 when the operating system is allowed and 1 when it is not or when
the allow-list is empty.

Examples:
  osrange check --allowed "linux, mac os x"
  osrange check --os windows --allowed linux
  osrange check --config rule.yaml --format yaml
  osrange check --node gpu-node-1 --allowed linux`,
		Flags: []cli.Flag{
			allowedFlag(),
			configFlag(),
			&cli.StringFlag{
				Name:    "os",
				Usage:   "operating system name to check instead of the detected one",
				Sources: cli.EnvVars("OSRANGE_OS"),
			},
			&cli.StringFlag{
				Name:  "node",
				Usage: "check the operating system reported by this Kubernetes node",
			},
			kubeconfigFlag(),
			outputFlag(),
			formatFlag(""),
			metricsFileFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			allowed, err := resolveAllowed(cmd)
			if err != nil {
				return err
			}

			src, err := propertySource(cmd)
			if err != nil {
				return err
			}

			r := &rule.MultipleOSRule{RequiredOSs: allowed, Version: version}
			res, ruleErr := r.Execute(ctx, host.NewEvaluator(src))
			writeMetrics(cmd)

			if res != nil && (cmd.IsSet("format") || cmd.IsSet("output")) {
				res.Node = cmd.String("node")
				if err := reportCheck(ctx, cmd, res); err != nil {
					return err
				}
			}

			return ruleErr
		},
	}
}

func reportCheck(ctx context.Context, cmd *cli.Command, res *rule.Result) error {
	if cmd.String("format") == "" {
		return writeReport(ctx, cmd, serializer.FormatYAML, res)
	}
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}
	return writeReport(ctx, cmd, format, res)
}

// propertySource picks the node's status when --node is set and the local
// runtime otherwise.
func propertySource(cmd *cli.Command) (host.PropertySource, error) {
	node := cmd.String("node")
	if node == "" {
		return host.NewRuntimeProperties().WithOverride(host.PropOSName, cmd.String("os")), nil
	}

	if cmd.IsSet("os") {
		slog.Warn("--os is ignored when --node is set", "node", node)
	}

	cs, err := newKubeClient(cmd.String("kubeconfig"))
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return &host.NodeProperties{ClientSet: cs, NodeName: node}, nil
}
