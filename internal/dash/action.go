// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package dash

// ActionType enumerates every state transition the dashboard knows.
type ActionType int

const (
	// ActionNone is emitted for unhandled input; the reducer ignores it.
	ActionNone ActionType = iota

	ActionQuit
	ActionNextTab
	ActionPrevTab
	ActionUp
	ActionDown
	ActionTop
	ActionBottom
	ActionSelect
	ActionReconcile
	ActionReconcileWithSource
	ActionToggleSuspend
	ActionFilterNamespace
	ActionSetNamespace
	ActionClosePopup
	ActionRefresh
)

// Action is one message into the reducer. Namespace carries the
// ActionSetNamespace payload; nil means "all namespaces".
type Action struct {
	Type      ActionType
	Namespace *string
}

// SetNamespace builds the namespace-filter action. Pass nil to clear
// the filter.
func SetNamespace(ns *string) Action {
	return Action{Type: ActionSetNamespace, Namespace: ns}
}

// Blocks reports whether applying this action may suspend on network
// or process I/O. The UI runs blocking actions off its event loop and
// refuses new input until they complete, which keeps the reducer a
// strict one-action-at-a-time writer.
func (a Action) Blocks() bool {
	switch a.Type {
	case ActionRefresh, ActionSetNamespace, ActionReconcile,
		ActionReconcileWithSource, ActionToggleSuspend:
		return true
	}
	return false
}
