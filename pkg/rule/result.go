/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package rule

import (
	"github.com/NVIDIA/osrange/pkg/header"
	"github.com/NVIDIA/osrange/pkg/osrange"
)

// Result is the reportable form of a validation outcome.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	osrange.Outcome `json:",inline" yaml:",inline"`

	// Node is set when the OS name came from a Kubernetes node.
	Node string `json:"node,omitempty" yaml:"node,omitempty"`
}

// NewResult wraps out with a validation header.
func NewResult(out osrange.Outcome, version string) *Result {
	r := &Result{Outcome: out}
	r.Init(header.KindValidation, version)
	return r
}

// NodeReport aggregates the results of validating many nodes.
type NodeReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Summary NodeSummary `json:"summary" yaml:"summary"`
	Results []*Result   `json:"results" yaml:"results"`
}

// NodeSummary counts node results.
type NodeSummary struct {
	Total  int            `json:"total" yaml:"total"`
	Passed int            `json:"passed" yaml:"passed"`
	Failed int            `json:"failed" yaml:"failed"`
	Errors int            `json:"errors" yaml:"errors"`
	Status osrange.Status `json:"status" yaml:"status"`
}

// NewNodeReport returns an empty report.
func NewNodeReport(version string) *NodeReport {
	r := &NodeReport{}
	r.Init(header.KindNodeReport, version)
	return r
}

// Add records a node result. A nil result counts as an evaluation error for node.
func (r *NodeReport) Add(node string, res *Result, err error) {
	r.Summary.Total++
	if res == nil {
		r.Summary.Errors++
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		r.Results = append(r.Results, &Result{
			Outcome: osrange.Outcome{Status: osrange.StatusFail, Message: msg},
			Node:    node,
		})
		return
	}

	res.Node = node
	r.Results = append(r.Results, res)
	if res.Passed() {
		r.Summary.Passed++
	} else {
		r.Summary.Failed++
	}
}

// Finalize sets the overall status: pass only if every node passed.
func (r *NodeReport) Finalize() {
	if r.Summary.Total > 0 && r.Summary.Passed == r.Summary.Total {
		r.Summary.Status = osrange.StatusPass
	} else {
		r.Summary.Status = osrange.StatusFail
	}
}
