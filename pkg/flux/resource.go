// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

// Package flux models the Flux CD resources the dashboard operates on:
// Kustomization, HelmRelease and HelmChart. Resources are plain value
// structs tagged with their kind, so copying one (for a details popup
// snapshot) is a struct copy and can never fail.
package flux

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Kind identifies one of the three resource variants.
type Kind string

const (
	KindKustomization Kind = "Kustomization"
	KindHelmRelease   Kind = "HelmRelease"
	KindHelmChart     Kind = "HelmChart"
)

// CLIArg returns the kind argument the flux CLI expects.
func (k Kind) CLIArg() string {
	switch k {
	case KindKustomization:
		return "kustomization"
	case KindHelmRelease:
		return "helmrelease"
	case KindHelmChart:
		return "helmchart"
	}
	return ""
}

// CanSuspend reports whether this kind has a suspend field.
// HelmCharts are reconciled on behalf of their HelmRelease and cannot
// be suspended directly.
func (k Kind) CanSuspend() bool {
	return k == KindKustomization || k == KindHelmRelease
}

// Status is the derived state of a resource. Exactly one value holds
// at any time; it is computed by Classify, never set by the operator.
type Status string

const (
	StatusReady       Status = "Ready"
	StatusFailed      Status = "Failed"
	StatusReconciling Status = "Reconciling"
	StatusSuspended   Status = "Suspended"
	StatusUnknown     Status = "Unknown"
)

// Condition is one entry from a resource's status.conditions list.
type Condition struct {
	Type    string
	Status  metav1.ConditionStatus
	Reason  string
	Message string
}

// Resource is the tagged-union record for all three variants. The
// variant-specific fields are zero for kinds that do not carry them.
type Resource struct {
	Kind      Kind
	Name      string
	Namespace string

	Status        Status
	StatusMessage string
	Suspended     bool
	Revision      string // empty when the cluster has not reported one

	// Kustomization only.
	Path string

	// Kustomization and HelmChart.
	SourceRef string

	// HelmRelease and HelmChart.
	Chart        string
	ChartVersion string
}

// IsReady reports whether the resource reconciled successfully.
func (r Resource) IsReady() bool {
	return r.Status == StatusReady
}

// IsSuspended reports whether reconciliation is halted. Always false
// for HelmCharts, which have no suspend operation.
func (r Resource) IsSuspended() bool {
	return r.Kind.CanSuspend() && r.Suspended
}
