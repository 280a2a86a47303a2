/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package rule

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/osrange/pkg/defaults"
	cnserrors "github.com/NVIDIA/osrange/pkg/errors"
	"github.com/NVIDIA/osrange/pkg/host"
	"github.com/NVIDIA/osrange/pkg/serializer"
	"github.com/NVIDIA/osrange/pkg/server"
)

// DefaultValidateTimeout bounds a single validation request.
const DefaultValidateTimeout = defaults.ValidateTimeout

// Handler serves validation requests over HTTP.
type Handler struct {
	// Version is recorded in result headers.
	Version string

	// Properties resolves the OS name when the request does not supply one.
	// Nil means the server's runtime properties.
	Properties func() *host.RuntimeProperties
}

// NewHandler returns a Handler using the server's runtime properties.
func NewHandler(version string) *Handler {
	return &Handler{
		Version:    version,
		Properties: host.NewRuntimeProperties,
	}
}

// HandleValidate validates an OS name against an allow-list.
//
//	GET /v1/validate?os=linux&allowed=linux,windows
//
// When os is omitted the server's own OS is used. Responds 200 with the
// Result when the OS is allowed and 412 with the Result when it is not.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultValidateTimeout)
	defer cancel()

	q := r.URL.Query()
	props := h.properties()
	props.WithOverride(host.PropOSName, q.Get("os"))

	logger := slog.Default().With("request_id", server.RequestID(r.Context()))
	helper := host.NewEvaluator(props, host.WithLogger(logger))

	rule := &MultipleOSRule{RequiredOSs: q.Get("allowed"), Version: h.Version}
	res, err := rule.Execute(ctx, helper)
	if res == nil {
		server.WriteErrorFromErr(w, r, err, "Failed to evaluate operating system", nil)
		return
	}

	status := http.StatusOK
	if !res.Passed() {
		status = http.StatusPreconditionFailed
	}
	serializer.RespondJSON(w, status, res)
}

func (h *Handler) properties() *host.RuntimeProperties {
	if h.Properties == nil {
		return host.NewRuntimeProperties()
	}
	return h.Properties()
}
