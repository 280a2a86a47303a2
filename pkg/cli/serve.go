/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/osrange/pkg/api"
	"github.com/NVIDIA/osrange/pkg/defaults"
	"github.com/NVIDIA/osrange/pkg/logging"
	"github.com/NVIDIA/osrange/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve operating system validation over HTTP",
		Description: `Start an HTTP server exposing:
  GET /v1/validate?os=<name>&allowed=<list>  validate an operating system
  GET /health, GET /ready                    probes
  GET /metrics                               Prometheus metrics

When os is omitted the server's own operating system is validated.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Usage:   "address to listen on (default: all interfaces)",
				Sources: cli.EnvVars("OSRANGE_ADDRESS"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on",
				Value:   defaults.ServerPort,
				Sources: cli.EnvVars(server.EnvPort),
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "requests per second allowed across all clients",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := serverConfig(cmd)
			if err != nil {
				return err
			}

			setServeLogger(cmd)
			slog.Debug("server configuration", "addr", cfg.ListenAddr(), "rateLimit", float64(cfg.RateLimit))

			return api.Serve(ctx, version, cfg)
		},
	}
}

// setServeLogger switches to JSON logs tagged with the server name, keeping
// the level resolved by the root command.
func setServeLogger(cmd *cli.Command) {
	var w io.Writer = os.Stderr
	if ew := cmd.Root().ErrWriter; ew != nil {
		w = ew
	}
	slog.SetDefault(logging.NewStructuredLogger(w, api.Name, version, logLevel(cmd)))
}

// serverConfig overlays the serve flags on the server defaults.
func serverConfig(cmd *cli.Command) (*server.Config, error) {
	cfg := server.DefaultConfig()

	if cmd.IsSet("address") {
		cfg.Address = cmd.String("address")
	}
	if cmd.IsSet("port") {
		port := int(cmd.Int("port"))
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid port: %d", port)
		}
		cfg.Port = port
	}
	if cmd.IsSet("rate-limit") {
		limit := cmd.Float("rate-limit")
		if limit <= 0 {
			return nil, fmt.Errorf("invalid rate limit: %v", limit)
		}
		cfg.RateLimit = rate.Limit(limit)
		cfg.RateLimitBurst = max(int(limit*2), 1)
	}

	return cfg, nil
}
