/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package host supplies the environment facts a rule is evaluated against.
//
// A rule never inspects the machine itself. It asks a Helper to evaluate a
// property expression such as "${os.name}" and trusts the answer. Properties
// come from a PropertySource: the local runtime (RuntimeProperties) or a
// Kubernetes node (NodeProperties).
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ExprOSName is the expression resolving to the operating system name.
const ExprOSName = "${os.name}"

var (
	// ErrInvalidExpression is returned for expressions not of the form ${name}.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrUnknownProperty is returned when a source cannot resolve a property.
	ErrUnknownProperty = errors.New("unknown property")
)

// Helper is what a rule receives from its host.
type Helper interface {
	// Evaluate resolves an expression of the form ${property}.
	Evaluate(ctx context.Context, expression string) (string, error)

	// Log returns the logger the rule writes to.
	Log() *slog.Logger
}

// PropertySource resolves a single named property.
type PropertySource interface {
	Property(ctx context.Context, name string) (string, error)
}

// Evaluator is the default Helper, backed by a PropertySource.
type Evaluator struct {
	source PropertySource
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger returned by Log.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = l
	}
}

// NewEvaluator returns an Evaluator reading properties from src.
func NewEvaluator(src PropertySource, opts ...Option) *Evaluator {
	e := &Evaluator{
		source: src,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate implements Helper.
func (e *Evaluator) Evaluate(ctx context.Context, expression string) (string, error) {
	name, err := ParseExpression(expression)
	if err != nil {
		return "", err
	}
	if e.source == nil {
		return "", fmt.Errorf("%w: %s (no property source)", ErrUnknownProperty, name)
	}

	v, err := e.source.Property(ctx, name)
	if err != nil {
		return "", err
	}

	e.logger.Debug("evaluated expression", "expression", expression, "value", v)
	return v, nil
}

// Log implements Helper.
func (e *Evaluator) Log() *slog.Logger {
	return e.logger
}

// ParseExpression extracts the property name from "${name}".
func ParseExpression(expression string) (string, error) {
	expr := strings.TrimSpace(expression)
	if !strings.HasPrefix(expr, "${") || !strings.HasSuffix(expr, "}") {
		return "", fmt.Errorf("%w %q: expected ${property}", ErrInvalidExpression, expression)
	}

	name := strings.TrimSpace(expr[2 : len(expr)-1])
	if name == "" || strings.ContainsAny(name, "${}") {
		return "", fmt.Errorf("%w %q: expected ${property}", ErrInvalidExpression, expression)
	}
	return name, nil
}
