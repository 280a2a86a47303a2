/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/osrange/pkg/config"
	"github.com/NVIDIA/osrange/pkg/k8s/client"
	"github.com/NVIDIA/osrange/pkg/rule"
	"github.com/NVIDIA/osrange/pkg/serializer"
)

// newKubeClient is swapped in tests.
var newKubeClient = client.BuildKubeClient

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path for the report (default: stdout)",
	}
}

func formatFlag(def string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   def,
		Usage:   fmt.Sprintf("report format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func allowedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "allowed",
		Aliases: []string{"a"},
		Usage:   "comma-separated list of allowed operating systems",
		Sources: cli.EnvVars("OSRANGE_ALLOWED"),
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "rule file (kind: OSRangeRule) providing the allowed operating systems",
		TakesFile: true,
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      "kubeconfig",
		Usage:     "path to the kubeconfig file (default: $KUBECONFIG or ~/.kube/config)",
		TakesFile: true,
	}
}

func metricsFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "write validation metrics in Prometheus text format to this file",
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s",
			outFormat, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// resolveAllowed returns the allow-list from --allowed, falling back to the
// rule file named by --config. An explicit --allowed wins over the file.
func resolveAllowed(cmd *cli.Command) (string, error) {
	if cmd.IsSet("allowed") {
		return cmd.String("allowed"), nil
	}

	path := cmd.String("config")
	if path == "" {
		return "", nil
	}

	cfg, err := config.LoadRule(path)
	if err != nil {
		return "", fmt.Errorf("failed to load rule from %q: %w", path, err)
	}
	if !cfg.HasRequiredOSs() {
		slog.Warn("rule does not set requiredOSs", "path", path, "rule", cfg.Name())
	}
	return cfg.RequiredOSs(), nil
}

// writeReport serializes data to --output, or to the command writer.
func writeReport(ctx context.Context, cmd *cli.Command, format serializer.Format, data any) error {
	path := strings.TrimSpace(cmd.String("output"))

	var ser serializer.Serializer
	if path == "" || path == serializer.StdoutURI {
		ser = serializer.NewWriter(format, cmd.Root().Writer)
	} else {
		var err error
		if ser, err = serializer.NewFileWriterOrStdout(format, path); err != nil {
			return err
		}
	}

	if c, ok := ser.(serializer.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}()
	}

	return ser.Serialize(ctx, data)
}

// writeMetrics dumps the rule metrics when --metrics-file is set.
func writeMetrics(cmd *cli.Command) {
	path := cmd.String("metrics-file")
	if path == "" {
		return
	}
	if err := rule.WriteMetrics(path); err != nil {
		slog.Warn("failed to write metrics", "path", path, "error", err)
	}
}
