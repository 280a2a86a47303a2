/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package api wires the validation handler into the HTTP server.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/osrange/pkg/rule"
	"github.com/NVIDIA/osrange/pkg/server"
)

const (
	// Name is the server name reported on the default route.
	Name = "osrange-api-server"

	// ValidatePath is the route of the validation endpoint.
	ValidatePath = "/v1/validate"
)

// Routes returns the API handlers keyed by path.
func Routes(version string) map[string]http.HandlerFunc {
	h := rule.NewHandler(version)
	return map[string]http.HandlerFunc{
		ValidatePath: h.HandleValidate,
	}
}

// Serve starts the API server and blocks until ctx is canceled or the process
// is signaled to stop.
func Serve(ctx context.Context, version string, cfg *server.Config) error {
	slog.Info("starting", "name", Name, "version", version)

	s := server.New(
		server.WithName(Name),
		server.WithVersion(version),
		server.WithConfig(cfg),
		server.WithHandler(Routes(version)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
