// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

// Package clierr classifies cluster errors and turns them into
// messages an operator can act on. Fetch failures are never fatal to
// the dashboard; they surface in the status bar, so the short form has
// to carry the hint in one line.
package clierr

import (
	"errors"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Error classes.
const (
	TypeForbidden  = "forbidden"   // RBAC access denied
	TypeCRDMissing = "crd_missing" // Flux CRDs not installed
	TypeNotFound   = "not_found"   // resource gone
	TypeNetwork    = "network"     // cluster unreachable
	TypeInternal   = "internal"    // anything else
)

// IsForbidden checks if the error is an access denied (RBAC) error.
func IsForbidden(err error) bool {
	if err == nil {
		return false
	}
	if apierrors.IsForbidden(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "access denied") ||
		strings.Contains(msg, "unauthorized")
}

// IsCRDMissing checks if the error means the Flux CRDs are absent.
func IsCRDMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no matches for kind") ||
		strings.Contains(msg, "could not find the requested resource")
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if apierrors.IsNotFound(err) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// IsNetworkError checks if the error is a connection/network error.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "context deadline exceeded")
}

// Classify determines the error class for display handling.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case IsForbidden(err):
		return TypeForbidden
	case IsCRDMissing(err):
		return TypeCRDMissing
	case IsNetworkError(err):
		return TypeNetwork
	case IsNotFound(err):
		return TypeNotFound
	default:
		return TypeInternal
	}
}

// Summarize renders a one-line message with an inline hint, suitable
// for the dashboard status bar. Network errors are reduced to their
// root cause; the wrap chain ("list kustomizations: Get https://...")
// adds nothing on one line.
func Summarize(err error) string {
	if err == nil {
		return ""
	}
	switch Classify(err) {
	case TypeForbidden:
		return fmt.Sprintf("access denied: %v (check RBAC list permissions for Flux resources)", err)
	case TypeCRDMissing:
		return fmt.Sprintf("Flux CRDs not found: %v (is Flux installed? try: flux install)", err)
	case TypeNetwork:
		return fmt.Sprintf("cluster unreachable: %v (check kubeconfig and connectivity)", Unwrap(err))
	default:
		return err.Error()
	}
}

// Pretty formats an error with a multi-line hint for non-TUI output,
// e.g. when the dashboard fails before the first draw.
func Pretty(err error) string {
	if err == nil {
		return ""
	}

	switch Classify(err) {
	case TypeForbidden:
		return fmt.Sprintf("Access denied: %v\n\nHint: you need list permissions for kustomizations,\n"+
			"helmreleases, helmcharts and namespaces.\n"+
			"  kubectl auth can-i list kustomizations -A", err)

	case TypeCRDMissing:
		return fmt.Sprintf("Flux CRDs not installed: %v\n\nHint: this cluster does not appear to run Flux.\n"+
			"  flux check\n"+
			"  flux install", err)

	case TypeNetwork:
		return fmt.Sprintf("Connection error: %v\n\nHint: check your cluster connectivity:\n"+
			"  kubectl cluster-info\n"+
			"  kubectl config current-context", err)

	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// Unwrap returns the innermost error in a wrap chain.
func Unwrap(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}
