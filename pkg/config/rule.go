/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads rule configuration files.
//
// A rule file is a Kubernetes-style resource in YAML or JSON:
//
//	kind: OSRangeRule
//	apiVersion: osrange.nvidia.com/v1alpha1
//	metadata:
//	  name: build-hosts
//	spec:
//	  requiredOSs: "linux, mac os x"
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/osrange/pkg/header"
)

// MetadataName is the metadata key holding the rule name.
const MetadataName = "name"

// RuleConfig is the on-disk representation of a rule.
type RuleConfig struct {
	header.Header `json:",inline" yaml:",inline"`

	Spec RuleSpec `json:"spec" yaml:"spec"`
}

// RuleSpec holds the rule parameters.
type RuleSpec struct {
	// RequiredOSs is the comma-separated list of allowed operating systems.
	// Nil means the file does not configure it.
	RequiredOSs *string `json:"requiredOSs,omitempty" yaml:"requiredOSs,omitempty"`
}

// NewRuleConfig returns a RuleConfig with its header set.
func NewRuleConfig(name, requiredOSs string) *RuleConfig {
	return &RuleConfig{
		Header: *header.New(
			header.WithKind(header.KindRule),
			header.WithMetadata(MetadataName, name),
		),
		Spec: RuleSpec{
			RequiredOSs: ptr.To(requiredOSs),
		},
	}
}

// Name returns the rule name from metadata, if any.
func (c *RuleConfig) Name() string {
	return c.Metadata[MetadataName]
}

// RequiredOSs returns the configured allow-list, or "" when unset.
func (c *RuleConfig) RequiredOSs() string {
	return ptr.Deref(c.Spec.RequiredOSs, "")
}

// HasRequiredOSs reports whether the file sets requiredOSs, even to an empty string.
func (c *RuleConfig) HasRequiredOSs() bool {
	return c.Spec.RequiredOSs != nil
}

// ParseRule decodes and checks a rule document.
func ParseRule(data []byte) (*RuleConfig, error) {
	var cfg RuleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rule: %w", err)
	}

	if !cfg.IsKind(header.KindRule) {
		return nil, fmt.Errorf("unsupported rule document: kind %q, apiVersion %q (expected kind %q, apiVersion %q)",
			cfg.Kind, cfg.APIVersion, header.KindRule, header.APIVersion)
	}

	return &cfg, nil
}

// LoadRule reads and parses the rule file at path.
func LoadRule(path string) (*RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %q: %w", path, err)
	}

	cfg, err := ParseRule(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
