// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		kind       Kind
		conditions []Condition
		suspended  bool
		wantStatus Status
		wantMsg    string
	}{
		{
			name:       "suspended wins over ready",
			kind:       KindKustomization,
			conditions: []Condition{{Type: "Ready", Status: metav1.ConditionTrue, Message: "Applied revision main@abc"}},
			suspended:  true,
			wantStatus: StatusSuspended,
			wantMsg:    "Suspended",
		},
		{
			name:       "ready true",
			kind:       KindKustomization,
			conditions: []Condition{{Type: "Ready", Status: metav1.ConditionTrue, Message: "Applied revision main@abc"}},
			wantStatus: StatusReady,
			wantMsg:    "Applied revision main@abc",
		},
		{
			name:       "ready false failed",
			kind:       KindKustomization,
			conditions: []Condition{{Type: "Ready", Status: metav1.ConditionFalse, Reason: "BuildFailed", Message: "kustomize build failed"}},
			wantStatus: StatusFailed,
			wantMsg:    "kustomize build failed",
		},
		{
			name:       "ready false progressing is reconciling",
			kind:       KindKustomization,
			conditions: []Condition{{Type: "Ready", Status: metav1.ConditionFalse, Reason: "Progressing", Message: "applying"}},
			wantStatus: StatusReconciling,
			wantMsg:    "applying",
		},
		{
			name:       "helmrelease artifact failed is reconciling",
			kind:       KindHelmRelease,
			conditions: []Condition{{Type: "Ready", Status: metav1.ConditionFalse, Reason: "ArtifactFailed", Message: "chart pull pending"}},
			wantStatus: StatusReconciling,
			wantMsg:    "chart pull pending",
		},
		{
			name:       "helmchart has no transient reasons",
			kind:       KindHelmChart,
			conditions: []Condition{{Type: "Ready", Status: metav1.ConditionFalse, Reason: "Progressing", Message: "fetching"}},
			wantStatus: StatusFailed,
			wantMsg:    "fetching",
		},
		{
			name:       "ready unknown is reconciling",
			kind:       KindKustomization,
			conditions: []Condition{{Type: "Ready", Status: metav1.ConditionUnknown, Message: "reconciliation in progress"}},
			wantStatus: StatusReconciling,
			wantMsg:    "reconciliation in progress",
		},
		{
			name: "first ready condition decides",
			kind: KindKustomization,
			conditions: []Condition{
				{Type: "Ready", Status: metav1.ConditionFalse, Reason: "BuildFailed", Message: "first"},
				{Type: "Ready", Status: metav1.ConditionTrue, Message: "second"},
			},
			wantStatus: StatusFailed,
			wantMsg:    "first",
		},
		{
			name: "reconciling condition when no ready",
			kind: KindHelmRelease,
			conditions: []Condition{
				{Type: "Released", Status: metav1.ConditionTrue, Message: "install done"},
				{Type: "Reconciling", Status: metav1.ConditionTrue, Message: "upgrade running"},
			},
			wantStatus: StatusReconciling,
			wantMsg:    "upgrade running",
		},
		{
			name:       "reconciling false does not count",
			kind:       KindHelmRelease,
			conditions: []Condition{{Type: "Reconciling", Status: metav1.ConditionFalse, Message: "done"}},
			wantStatus: StatusUnknown,
			wantMsg:    "Status unknown",
		},
		{
			name:       "no conditions",
			kind:       KindKustomization,
			wantStatus: StatusUnknown,
			wantMsg:    "Status unknown",
		},
		{
			name:       "empty message becomes Unknown",
			kind:       KindKustomization,
			conditions: []Condition{{Type: "Ready", Status: metav1.ConditionTrue}},
			wantStatus: StatusReady,
			wantMsg:    "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Classify(tt.kind, tt.conditions, tt.suspended)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestFormatRevision(t *testing.T) {
	tests := []struct {
		name     string
		revision string
		want     string
	}{
		{"branch and sha", "main@sha1:abcdef1234567890", "main@sha1:ab"},
		{"branch at short sha", "main@abc1234567890", "main@abc1234"},
		{"sha already short", "main@abc", "main@abc"},
		{"no separator long", "0123456789abcdef", "0123456789ab"},
		{"no separator short", "v1.2.3", "v1.2.3"},
		{"two separators falls back to prefix", "a@b@c", "a@b@c"},
		{"empty", "", ""},
		{"multibyte runes survive the cut", "привет-мир-длинная-ревизия", "привет-мир-д"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRevision(tt.revision))
		})
	}
}

func TestKindCanSuspend(t *testing.T) {
	assert.True(t, KindKustomization.CanSuspend())
	assert.True(t, KindHelmRelease.CanSuspend())
	assert.False(t, KindHelmChart.CanSuspend())
}

func TestResourceIsSuspended(t *testing.T) {
	assert.True(t, Resource{Kind: KindKustomization, Suspended: true}.IsSuspended())
	// The flag is meaningless on a HelmChart.
	assert.False(t, Resource{Kind: KindHelmChart, Suspended: true}.IsSuspended())
}
