// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fluxtop/fluxtop/internal/dash"
)

// keyMap defines the dashboard key bindings. Help text is rendered in
// the status bar.
type keyMap struct {
	Quit         key.Binding
	ForceQuit    key.Binding
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	Select       key.Binding
	Reconcile    key.Binding
	ReconcileSrc key.Binding
	Suspend      key.Binding
	Namespace    key.Binding
	Refresh      key.Binding
	Close        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:          key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		NextTab:      key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next tab")),
		PrevTab:      key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev tab")),
		Select:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Reconcile:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reconcile")),
		ReconcileSrc: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reconcile+source")),
		Suspend:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "suspend/resume")),
		Namespace:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "namespace")),
		Refresh:      key.NewBinding(key.WithKeys("f5", "ctrl+r"), key.WithHelp("f5", "refresh")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// translate maps a key press to an Action, branching on the active
// overlay the way the state machine expects. It only reads the
// snapshot; all mutation goes through the reducer.
func (k keyMap) translate(msg tea.KeyMsg, snap dash.Snapshot) dash.Action {
	if key.Matches(msg, k.ForceQuit) {
		return dash.Action{Type: dash.ActionQuit}
	}

	switch snap.Popup.(type) {
	case nil:
		return k.translateNormal(msg)
	case dash.NamespaceFilterPopup:
		switch {
		case key.Matches(msg, k.Quit):
			return dash.Action{Type: dash.ActionQuit}
		case key.Matches(msg, k.Close):
			return dash.Action{Type: dash.ActionClosePopup}
		case key.Matches(msg, k.Up):
			return dash.Action{Type: dash.ActionUp}
		case key.Matches(msg, k.Down):
			return dash.Action{Type: dash.ActionDown}
		case key.Matches(msg, k.Select):
			return dash.Action{Type: dash.ActionSelect}
		}
	case dash.ReconcilingPopup:
		// No dismissal while the external call is outstanding.
		if key.Matches(msg, k.Quit) {
			return dash.Action{Type: dash.ActionQuit}
		}
	default:
		// Details and error overlays close on esc or enter.
		switch {
		case key.Matches(msg, k.Quit):
			return dash.Action{Type: dash.ActionQuit}
		case key.Matches(msg, k.Close), key.Matches(msg, k.Select):
			return dash.Action{Type: dash.ActionClosePopup}
		}
	}
	return dash.Action{Type: dash.ActionNone}
}

func (k keyMap) translateNormal(msg tea.KeyMsg) dash.Action {
	switch {
	case key.Matches(msg, k.Quit), key.Matches(msg, k.Close):
		return dash.Action{Type: dash.ActionQuit}
	case key.Matches(msg, k.Up):
		return dash.Action{Type: dash.ActionUp}
	case key.Matches(msg, k.Down):
		return dash.Action{Type: dash.ActionDown}
	case key.Matches(msg, k.Top):
		return dash.Action{Type: dash.ActionTop}
	case key.Matches(msg, k.Bottom):
		return dash.Action{Type: dash.ActionBottom}
	case key.Matches(msg, k.NextTab):
		return dash.Action{Type: dash.ActionNextTab}
	case key.Matches(msg, k.PrevTab):
		return dash.Action{Type: dash.ActionPrevTab}
	case key.Matches(msg, k.Select):
		return dash.Action{Type: dash.ActionSelect}
	case key.Matches(msg, k.ReconcileSrc):
		return dash.Action{Type: dash.ActionReconcileWithSource}
	case key.Matches(msg, k.Reconcile):
		return dash.Action{Type: dash.ActionReconcile}
	case key.Matches(msg, k.Suspend):
		return dash.Action{Type: dash.ActionToggleSuspend}
	case key.Matches(msg, k.Namespace):
		return dash.Action{Type: dash.ActionFilterNamespace}
	case key.Matches(msg, k.Refresh):
		return dash.Action{Type: dash.ActionRefresh}
	}
	return dash.Action{Type: dash.ActionNone}
}
