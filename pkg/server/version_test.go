/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const osrangeMediaV1 = "application/vnd.nvidia.osrange.v1+json"

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{name: "no accept", want: DefaultAPIVersion},
		{name: "plain json", accept: "application/json", want: DefaultAPIVersion},
		{name: "osrange v1", accept: osrangeMediaV1, want: "v1"},
		{name: "osrange v1 with parameters", accept: osrangeMediaV1 + "; charset=utf-8", want: "v1"},
		{name: "unsupported osrange version", accept: "application/vnd.nvidia.osrange.v9+json", want: DefaultAPIVersion},
		{name: "other vendor", accept: "application/vnd.nvidia.other.v1+json", want: DefaultAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, negotiateAPIVersion(req))
		})
	}
}

func TestIsValidAPIVersion(t *testing.T) {
	assert.True(t, isValidAPIVersion("v1"))
	for _, v := range []string{"", "v0", "v2", "1", "V1"} {
		assert.False(t, isValidAPIVersion(v), v)
	}
}

func TestVersionHeader_APIRoutes(t *testing.T) {
	h := New(WithHandler(map[string]http.HandlerFunc{
		"/v1/validate": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
	})).Handler()

	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{name: "negotiated", accept: osrangeMediaV1, want: "v1"},
		{name: "defaulted", want: DefaultAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/validate?os=linux&allowed=linux", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Header().Get(HeaderAPIVersion))
		})
	}
}

func TestVersionHeader_SystemRoutesUnversioned(t *testing.T) {
	h := New().Handler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Accept", osrangeMediaV1)
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(HeaderAPIVersion))
}
