/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package osrange

import (
	"fmt"
	"log/slog"

	"github.com/agnivade/levenshtein"

	cnserrors "github.com/NVIDIA/osrange/pkg/errors"
)

const (
	// MsgEmptyAllowList is reported when no allowed operating system is configured.
	MsgEmptyAllowList = "Allowed Operating System range should be specified."

	// MsgNotInRange is reported when the current operating system is not allowed.
	MsgNotInRange = "The current Operating System is not in the allowed range."

	// maxSuggestionDistance bounds the edit distance for a "did you mean" hint.
	maxSuggestionDistance = 3
)

var (
	// ErrEmptyAllowList is returned by Outcome.Err when the allow-list is empty.
	ErrEmptyAllowList = cnserrors.New(cnserrors.ErrCodeInvalidRequest, MsgEmptyAllowList)

	// ErrOSNotInRange is returned by Outcome.Err when the OS is not in the allow-list.
	ErrOSNotInRange = cnserrors.New(cnserrors.ErrCodePreconditionFailed, MsgNotInRange)
)

// Status is the terminal state of a validation.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Reason qualifies a failed validation.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonEmptyAllowList Reason = "EmptyAllowList"
	ReasonNotInRange     Reason = "OSNotInRange"
)

// Outcome is the result of a single validation.
type Outcome struct {
	Status  Status `json:"status" yaml:"status"`
	Reason  Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
	Message string `json:"message" yaml:"message"`

	// OS is the operating system name that was checked.
	OS string `json:"os" yaml:"os"`

	// Allowed holds the allow-list entries the OS was checked against.
	Allowed []string `json:"allowed,omitempty" yaml:"allowed,omitempty"`

	// Suggestion is the closest allowed name when the OS looks like a typo of one.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Passed reports whether the OS was found in the allow-list.
func (o Outcome) Passed() bool {
	return o.Status == StatusPass
}

// Err returns nil for a passing outcome and the matching sentinel error otherwise.
func (o Outcome) Err() error {
	switch o.Reason {
	case ReasonEmptyAllowList:
		return ErrEmptyAllowList
	case ReasonNotInRange:
		return ErrOSNotInRange
	}
	if o.Status == StatusFail {
		return cnserrors.New(cnserrors.ErrCodeInternal, o.Message)
	}
	return nil
}

type options struct {
	logger *slog.Logger
}

// Option configures Validate.
type Option func(*options)

// WithLogger sets the logger receiving the informational lines.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Validate checks whether currentOS is a member of list.
// currentOS is expected to be lowercased already.
func Validate(currentOS string, list AllowList, opts ...Option) Outcome {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	o.logger.Info(fmt.Sprintf("The build is running in a %q box. Will check if this OS is within the allowed range.", currentOS),
		"os", currentOS)

	out := Outcome{
		OS:      currentOS,
		Allowed: list.Entries(),
	}

	if list.IsEmpty() {
		out.Status = StatusFail
		out.Reason = ReasonEmptyAllowList
		out.Message = MsgEmptyAllowList
		return out
	}

	if !list.Contains(currentOS) {
		out.Status = StatusFail
		out.Reason = ReasonNotInRange
		out.Message = MsgNotInRange
		out.Suggestion = closest(currentOS, list)
		return out
	}

	out.Status = StatusPass
	out.Message = fmt.Sprintf("--> %s is in the allowed OS range: %s", currentOS, list)
	o.logger.Info(out.Message, "os", currentOS, "allowed", out.Allowed)

	return out
}

// closest returns the allow-list entry nearest to name, or "" if none is near enough.
func closest(name string, list AllowList) string {
	if name == "" {
		return ""
	}
	best, bestDist := "", maxSuggestionDistance+1
	for _, entry := range list.entries {
		if d := levenshtein.ComputeDistance(name, entry); d < bestDist {
			best, bestDist = entry, d
		}
	}
	return best
}
