/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package header

import (
	"time"
)

const (
	// APIVersion is the API version of every document osrange emits or reads.
	APIVersion = "osrange.nvidia.com/v1alpha1"

	// MetadataTimestamp is the metadata key holding the creation time.
	MetadataTimestamp = "timestamp"

	// MetadataVersion is the metadata key holding the tool version.
	MetadataVersion = "version"
)

// Kind identifies the type of a document.
type Kind string

const (
	KindRule       Kind = "OSRangeRule"
	KindValidation Kind = "OSRangeValidation"
	KindNodeReport Kind = "OSRangeNodeReport"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// New creates a new Header with APIVersion set and the given options applied.
func New(opts ...Option) *Header {
	h := &Header{
		APIVersion: APIVersion,
		Metadata:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header contains the Kubernetes-style type information of a document.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs describing the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and API version and records the tool version and current time.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// IsKind reports whether the header declares kind with the supported API version.
func (h *Header) IsKind(kind Kind) bool {
	return h.Kind == kind && h.APIVersion == APIVersion
}
