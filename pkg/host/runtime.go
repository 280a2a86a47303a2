/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package host

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
)

const (
	PropOSName  = "os.name"
	PropOSArch  = "os.arch"
	PropOSImage = "os.image"

	envPropertyPrefix = "env."
)

// osNames maps GOOS values to the names build hosts conventionally report.
var osNames = map[string]string{
	"linux":     "Linux",
	"darwin":    "Mac OS X",
	"windows":   "Windows",
	"freebsd":   "FreeBSD",
	"openbsd":   "OpenBSD",
	"netbsd":    "NetBSD",
	"solaris":   "SunOS",
	"aix":       "AIX",
	"dragonfly": "DragonFly",
}

// OSName returns the conventional name for a GOOS value. Unmapped values are returned as is.
func OSName(goos string) string {
	if n, ok := osNames[goos]; ok {
		return n
	}
	return goos
}

// RuntimeProperties resolves properties of the running process.
//
// Supported properties are os.name, os.arch and env.<NAME>. Overrides take
// precedence over detected values.
type RuntimeProperties struct {
	// Overrides maps property names to fixed values.
	Overrides map[string]string

	// GOOS and GOARCH default to the runtime values when empty.
	GOOS   string
	GOARCH string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewRuntimeProperties returns a RuntimeProperties for the running process.
func NewRuntimeProperties() *RuntimeProperties {
	return &RuntimeProperties{}
}

// WithOverride sets a fixed value for a property and returns the receiver.
// Empty values are ignored.
func (p *RuntimeProperties) WithOverride(name, value string) *RuntimeProperties {
	if value == "" {
		return p
	}
	if p.Overrides == nil {
		p.Overrides = make(map[string]string)
	}
	p.Overrides[name] = value
	return p
}

// Property implements PropertySource.
func (p *RuntimeProperties) Property(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if v, ok := p.Overrides[name]; ok {
		return v, nil
	}

	switch name {
	case PropOSName:
		return OSName(valueOr(p.GOOS, runtime.GOOS)), nil
	case PropOSArch:
		return valueOr(p.GOARCH, runtime.GOARCH), nil
	}

	if key, ok := strings.CutPrefix(name, envPropertyPrefix); ok && key != "" {
		lookup := p.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if v, found := lookup(key); found {
			return v, nil
		}
		return "", fmt.Errorf("%w: environment variable %s is not set", ErrUnknownProperty, key)
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownProperty, name)
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
