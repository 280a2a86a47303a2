/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package rule adapts the osrange check to the host rule contract.
//
// MultipleOSRule asks its host.Helper for "${os.name}", lowercases the answer
// and validates it against the configured allow-list. Unlike the single-OS
// check a host usually ships, it accepts a whole range of operating systems.
package rule

import (
	"context"
	"time"

	cnserrors "github.com/NVIDIA/osrange/pkg/errors"
	"github.com/NVIDIA/osrange/pkg/host"
	"github.com/NVIDIA/osrange/pkg/osrange"
)

// MsgLookupFailed prefixes evaluation failures.
const MsgLookupFailed = "Unable to lookup an expression"

// MultipleOSRule fails when the host OS is not in RequiredOSs.
type MultipleOSRule struct {
	// RequiredOSs is the comma-separated list of operating systems the build may run on.
	RequiredOSs string

	// Version is recorded in the result header.
	Version string
}

// Execute evaluates the rule. The returned Result is nil only when the OS name
// could not be evaluated; otherwise it is always set, and err is the outcome's
// sentinel error on failure.
func (r *MultipleOSRule) Execute(ctx context.Context, helper host.Helper) (*Result, error) {
	start := time.Now()
	defer func() {
		validationDuration.Observe(time.Since(start).Seconds())
	}()

	log := helper.Log()

	name, err := helper.Evaluate(ctx, host.ExprOSName)
	if err != nil {
		validationTotal.WithLabelValues(statusError, string(osrange.ReasonNone)).Inc()
		log.Error("failed to evaluate operating system name", "expression", host.ExprOSName, "error", err)
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable, MsgLookupFailed, err,
			map[string]any{"expression": host.ExprOSName})
	}

	currentOS := osrange.Normalize(name)
	out := osrange.Validate(currentOS, osrange.ParseAllowList(r.RequiredOSs), osrange.WithLogger(log))

	validationTotal.WithLabelValues(string(out.Status), string(out.Reason)).Inc()
	if out.Suggestion != "" {
		log.Warn("operating system name resembles an allowed entry", "os", currentOS, "suggestion", out.Suggestion)
	}

	return NewResult(out, r.Version), out.Err()
}

// Cacheable is always false: the OS is re-evaluated on every run.
func (r *MultipleOSRule) Cacheable() bool {
	return false
}

// CacheID is always empty; see Cacheable.
func (r *MultipleOSRule) CacheID() string {
	return ""
}
