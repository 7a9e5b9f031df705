// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/fluxtop/fluxtop/internal/dash"
	"github.com/fluxtop/fluxtop/pkg/flux"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTranslateNormalMode(t *testing.T) {
	k := defaultKeyMap()
	snap := dash.Snapshot{}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want dash.ActionType
	}{
		{"quit", keyRune('q'), dash.ActionQuit},
		{"esc quits without popup", tea.KeyMsg{Type: tea.KeyEsc}, dash.ActionQuit},
		{"force quit", tea.KeyMsg{Type: tea.KeyCtrlC}, dash.ActionQuit},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, dash.ActionUp},
		{"vim up", keyRune('k'), dash.ActionUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, dash.ActionDown},
		{"vim down", keyRune('j'), dash.ActionDown},
		{"top", keyRune('g'), dash.ActionTop},
		{"bottom", keyRune('G'), dash.ActionBottom},
		{"next tab", tea.KeyMsg{Type: tea.KeyTab}, dash.ActionNextTab},
		{"prev tab", tea.KeyMsg{Type: tea.KeyShiftTab}, dash.ActionPrevTab},
		{"select", tea.KeyMsg{Type: tea.KeyEnter}, dash.ActionSelect},
		{"reconcile", keyRune('r'), dash.ActionReconcile},
		{"reconcile with source", keyRune('R'), dash.ActionReconcileWithSource},
		{"suspend", keyRune('s'), dash.ActionToggleSuspend},
		{"namespace", keyRune('n'), dash.ActionFilterNamespace},
		{"refresh", tea.KeyMsg{Type: tea.KeyF5}, dash.ActionRefresh},
		{"unbound", keyRune('z'), dash.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.translate(tt.msg, snap).Type)
		})
	}
}

func TestTranslateNamespacePopup(t *testing.T) {
	k := defaultKeyMap()
	snap := dash.Snapshot{Popup: dash.NamespaceFilterPopup{Namespaces: []string{dash.AllNamespacesLabel}}}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want dash.ActionType
	}{
		{"up moves cursor", tea.KeyMsg{Type: tea.KeyUp}, dash.ActionUp},
		{"down moves cursor", tea.KeyMsg{Type: tea.KeyDown}, dash.ActionDown},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, dash.ActionSelect},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, dash.ActionClosePopup},
		{"q still quits", keyRune('q'), dash.ActionQuit},
		{"reconcile key ignored", keyRune('r'), dash.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.translate(tt.msg, snap).Type)
		})
	}
}

func TestTranslateReconcilingPopup(t *testing.T) {
	k := defaultKeyMap()
	snap := dash.Snapshot{Popup: dash.ReconcilingPopup{Name: "apps", Namespace: "flux-system"}}

	// The overlay cannot be dismissed while the call is in flight.
	assert.Equal(t, dash.ActionNone, k.translate(tea.KeyMsg{Type: tea.KeyEsc}, snap).Type)
	assert.Equal(t, dash.ActionNone, k.translate(tea.KeyMsg{Type: tea.KeyEnter}, snap).Type)
	assert.Equal(t, dash.ActionQuit, k.translate(keyRune('q'), snap).Type)
}

func TestTranslateDetailsPopup(t *testing.T) {
	k := defaultKeyMap()
	snap := dash.Snapshot{Popup: dash.ResourceDetailsPopup{Resource: flux.Resource{Name: "apps"}}}

	assert.Equal(t, dash.ActionClosePopup, k.translate(tea.KeyMsg{Type: tea.KeyEsc}, snap).Type)
	assert.Equal(t, dash.ActionClosePopup, k.translate(tea.KeyMsg{Type: tea.KeyEnter}, snap).Type)
	assert.Equal(t, dash.ActionNone, k.translate(tea.KeyMsg{Type: tea.KeyUp}, snap).Type)
}

func TestTranslateErrorPopup(t *testing.T) {
	k := defaultKeyMap()
	snap := dash.Snapshot{Popup: dash.ErrorPopup{Message: "boom"}}

	assert.Equal(t, dash.ActionClosePopup, k.translate(tea.KeyMsg{Type: tea.KeyEsc}, snap).Type)
	assert.Equal(t, dash.ActionQuit, k.translate(keyRune('q'), snap).Type)
}
