// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/fluxtop/fluxtop/internal/dash"
	"github.com/fluxtop/fluxtop/pkg/flux"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("27"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("237"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	popupStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(1, 2)

	statusStyles = map[flux.Status]lipgloss.Style{
		flux.StatusReady:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		flux.StatusFailed:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		flux.StatusReconciling: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		flux.StatusSuspended:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		flux.StatusUnknown:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Starting fluxtop..."
	}

	snap := m.view

	var b strings.Builder
	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n")

	bodyHeight := m.height - 5
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	if snap.Popup != nil {
		b.WriteString(lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderPopup(snap)))
	} else {
		b.WriteString(m.renderTable(snap, bodyHeight))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar(snap))
	return b.String()
}

func (m model) renderHeader(snap dash.Snapshot) string {
	title := titleStyle.Render("fluxtop") + dimStyle.Render("  cluster: "+snap.ClusterName)
	if snap.NamespaceFilter != nil {
		title += dimStyle.Render("  namespace: "+*snap.NamespaceFilter)
	}

	var tabs []string
	for _, t := range dash.Tabs() {
		label := fmt.Sprintf("%s (%d)", t.Title(), len(snap.List(t)))
		if t == snap.Tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

type column struct {
	title string
	width int
	cell  func(flux.Resource) string
}

func tableColumns(tab dash.Tab) []column {
	name := column{"NAME", 28, func(r flux.Resource) string { return r.Name }}
	namespace := column{"NAMESPACE", 18, func(r flux.Resource) string { return r.Namespace }}
	status := column{"STATUS", 12, func(r flux.Resource) string { return string(r.Status) }}
	revision := column{"REVISION", 20, func(r flux.Resource) string { return r.Revision }}
	chart := column{"CHART", 20, func(r flux.Resource) string { return r.Chart }}
	version := column{"VERSION", 10, func(r flux.Resource) string { return r.ChartVersion }}
	source := column{"SOURCE", 24, func(r flux.Resource) string { return r.SourceRef }}

	switch tab {
	case dash.TabKustomizations:
		return []column{name, namespace, status, revision, source,
			{"PATH", 20, func(r flux.Resource) string { return r.Path }}}
	case dash.TabHelmReleases:
		return []column{name, namespace, status, chart, version, revision}
	default:
		return []column{name, namespace, status, chart, version, source}
	}
}

func (m model) renderTable(snap dash.Snapshot, height int) string {
	columns := tableColumns(snap.Tab)
	list := snap.CurrentList()

	var b strings.Builder
	var header strings.Builder
	for _, c := range columns {
		header.WriteString(pad(c.title, c.width))
	}
	b.WriteString(headerStyle.Render(header.String()))
	b.WriteString("\n")

	if len(list) == 0 {
		msg := "No resources found"
		if snap.Loading {
			msg = "Loading..."
		}
		b.WriteString(dimStyle.Render("  " + msg))
		return b.String()
	}

	// Keep the cursor visible when the list outgrows the window.
	start := 0
	rows := height - 1
	if rows < 1 {
		rows = 1
	}
	cursor := snap.CurrentSelected()
	if cursor >= rows {
		start = cursor - rows + 1
	}

	for i := start; i < len(list) && i < start+rows; i++ {
		r := list[i]
		var row strings.Builder
		for _, c := range columns {
			row.WriteString(pad(c.cell(r), c.width))
		}
		if i == cursor {
			b.WriteString(selectedStyle.Render(row.String()))
		} else {
			// Tint the whole row by status.
			b.WriteString(statusStyles[r.Status].Render(row.String()))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) renderStatusBar(snap dash.Snapshot) string {
	var parts []string

	if snap.Loading || m.busy {
		parts = append(parts, m.spinner.View()+"refreshing")
	}
	if m.fluxMissing {
		parts = append(parts, warnStyle.Render("flux CLI not found: reconcile/suspend disabled"))
	}
	if snap.LastError != "" {
		parts = append(parts, errorStyle.Render(truncateRunes(snap.LastError, m.width-2)))
	}

	hints := "q quit · ↑↓ move · ←→ tabs · enter details · r reconcile · R +source · s suspend · n namespace"
	parts = append(parts, dimStyle.Render(truncateRunes(hints, m.width-2)))

	return strings.Join(parts, "\n")
}

func (m model) renderPopup(snap dash.Snapshot) string {
	switch p := snap.Popup.(type) {
	case dash.NamespaceFilterPopup:
		var b strings.Builder
		b.WriteString(titleStyle.Render("Filter by namespace"))
		b.WriteString("\n\n")
		for i, ns := range p.Namespaces {
			if i == p.Selected {
				b.WriteString(selectedStyle.Render("> " + ns))
			} else {
				b.WriteString("  " + ns)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("enter apply · esc cancel"))
		return popupStyle.Render(b.String())

	case dash.ResourceDetailsPopup:
		return popupStyle.Render(
			titleStyle.Render(string(p.Resource.Kind)+" details") + "\n\n" +
				resourceYAML(p.Resource) + "\n" +
				dimStyle.Render("esc close"))

	case dash.ReconcilingPopup:
		return popupStyle.Render(fmt.Sprintf("%s Reconciling %s/%s ...", m.spinner.View(), p.Namespace, p.Name))

	case dash.ErrorPopup:
		return popupStyle.BorderForeground(lipgloss.Color("196")).Render(
			errorStyle.Render("Error") + "\n\n" +
				truncateRunes(p.Message, 70) + "\n\n" +
				dimStyle.Render("esc close"))
	}
	return ""
}

// resourceYAML renders the snapshot copy held by the details popup.
func resourceYAML(r flux.Resource) string {
	doc := struct {
		Name         string `yaml:"name"`
		Namespace    string `yaml:"namespace"`
		Kind         string `yaml:"kind"`
		Status       string `yaml:"status"`
		Message      string `yaml:"message"`
		Suspended    bool   `yaml:"suspended"`
		Ready        bool   `yaml:"ready"`
		Revision     string `yaml:"revision,omitempty"`
		Source       string `yaml:"source,omitempty"`
		Path         string `yaml:"path,omitempty"`
		Chart        string `yaml:"chart,omitempty"`
		ChartVersion string `yaml:"chartVersion,omitempty"`
	}{
		Name:         r.Name,
		Namespace:    r.Namespace,
		Kind:         string(r.Kind),
		Status:       string(r.Status),
		Message:      r.StatusMessage,
		Suspended:    r.IsSuspended(),
		Ready:        r.IsReady(),
		Revision:     r.Revision,
		Source:       r.SourceRef,
		Path:         r.Path,
		Chart:        r.Chart,
		ChartVersion: r.ChartVersion,
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Sprintf("%s/%s", r.Namespace, r.Name)
	}
	return strings.TrimRight(string(out), "\n")
}

// pad fits s into width columns, truncating by rune count so
// multi-byte names never split mid-character.
func pad(s string, width int) string {
	s = truncateRunes(s, width-1)
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

// truncateRunes cuts s to at most n runes, appending an ellipsis when
// anything was dropped.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
