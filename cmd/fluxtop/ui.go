// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fluxtop/fluxtop/internal/dash"
)

// Messages
type actionDoneMsg struct{}

type refreshTickMsg time.Time

// model is the bubbletea shell around the state engine. It owns no
// resource state of its own: keys become Actions, Actions go through
// app.Update, and View renders the last Snapshot.
//
// Blocking actions run in a tea.Cmd goroutine; busy gates input while
// one is in flight so app.Update is never entered twice concurrently
// and snapshots are only taken between actions.
type model struct {
	app  *dash.App
	view dash.Snapshot
	keys keyMap

	spinner      spinner.Model
	width        int
	height       int
	ready        bool
	busy         bool
	quitting     bool
	refreshEvery time.Duration
	fluxMissing  bool
}

func newModel(app *dash.App, refreshEvery time.Duration, fluxMissing bool) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		app:          app,
		view:         app.Snapshot(),
		keys:         defaultKeyMap(),
		spinner:      s,
		refreshEvery: refreshEvery,
		fluxMissing:  fluxMissing,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshTick())
}

func (m model) refreshTick() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// dispatch applies a blocking action off the event loop.
func (m model) dispatch(action dash.Action) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		_ = app.Update(context.Background(), action)
		return actionDoneMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshTickMsg:
		// The periodic refresh keeps firing with overlays open; it is
		// only skipped while another blocking action runs.
		if m.busy {
			return m, m.refreshTick()
		}
		m.busy = true
		return m, tea.Batch(m.refreshTick(), m.dispatch(dash.Action{Type: dash.ActionRefresh}))

	case actionDoneMsg:
		m.busy = false
		m.view = m.app.Snapshot()
		return m, nil

	case tea.KeyMsg:
		action := m.keys.translate(msg, m.view)
		if action.Type == dash.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy || action.Type == dash.ActionNone {
			return m, nil
		}
		if m.actionBlocks(action) {
			m.busy = true
			return m, m.dispatch(action)
		}
		_ = m.app.Update(context.Background(), action)
		m.view = m.app.Snapshot()
		return m, nil
	}

	return m, nil
}

// actionBlocks mirrors Action.Blocks but also catches the popup
// confirm, which applies a namespace and refreshes.
func (m model) actionBlocks(action dash.Action) bool {
	if action.Blocks() {
		return true
	}
	if action.Type != dash.ActionSelect {
		return false
	}
	_, nsPopup := m.view.Popup.(dash.NamespaceFilterPopup)
	return nsPopup
}
