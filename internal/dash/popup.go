// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package dash

import "github.com/fluxtop/fluxtop/pkg/flux"

// AllNamespacesLabel heads the namespace popup list and maps to an
// unset filter.
const AllNamespacesLabel = "All namespaces"

// Popup is the closed set of overlay states. A nil Popup means no
// overlay is active; at most one is active at a time.
type Popup interface {
	// Dismissable reports whether ClosePopup may dismiss the overlay.
	Dismissable() bool
}

// NamespaceFilterPopup lets the operator pick a namespace filter.
// Namespaces holds AllNamespacesLabel followed by the inventory in
// original order; Selected is the popup's own cursor.
type NamespaceFilterPopup struct {
	Namespaces []string
	Selected   int
}

func (NamespaceFilterPopup) Dismissable() bool { return true }

// ResourceDetailsPopup shows one resource. Resource is a value copy
// taken at selection time; a later refresh replaces the lists
// wholesale and must not change what the popup shows.
type ResourceDetailsPopup struct {
	Resource flux.Resource
}

func (ResourceDetailsPopup) Dismissable() bool { return true }

// ReconcilingPopup is shown while an external reconcile call is
// outstanding. It cannot be dismissed; there is no cancellation.
type ReconcilingPopup struct {
	Name      string
	Namespace string
}

func (ReconcilingPopup) Dismissable() bool { return false }

// ErrorPopup reports a failed reconcile or suspend toggle.
type ErrorPopup struct {
	Message string
}

func (ErrorPopup) Dismissable() bool { return true }
