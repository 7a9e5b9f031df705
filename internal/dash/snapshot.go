// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package dash

import "github.com/fluxtop/fluxtop/pkg/flux"

// Snapshot is the read-only view the renderer and key handler consume,
// taken once per render pass between actions. Slices are shared with
// the App but the engine only ever replaces them wholesale, so a
// snapshot stays internally consistent until the next action.
type Snapshot struct {
	Tab             Tab
	Kustomizations  []flux.Resource
	HelmReleases    []flux.Resource
	HelmCharts      []flux.Resource
	Selected        [tabCount]int
	NamespaceFilter *string
	Namespaces      []string
	Popup           Popup
	Loading         bool
	LastError       string
	ClusterName     string
}

// Snapshot captures the current state. Must be called between
// actions, never while an Update is in flight.
func (a *App) Snapshot() Snapshot {
	return Snapshot{
		Tab:             a.tab,
		Kustomizations:  a.kustomizations,
		HelmReleases:    a.helmReleases,
		HelmCharts:      a.helmCharts,
		Selected:        a.selected,
		NamespaceFilter: a.namespaceFilter,
		Namespaces:      a.namespaces,
		Popup:           a.popup,
		Loading:         a.loading,
		LastError:       a.lastError,
		ClusterName:     a.clusterName,
	}
}

// List returns the resource list for a tab.
func (s Snapshot) List(t Tab) []flux.Resource {
	switch t {
	case TabKustomizations:
		return s.Kustomizations
	case TabHelmReleases:
		return s.HelmReleases
	case TabHelmCharts:
		return s.HelmCharts
	}
	return nil
}

// CurrentList returns the active tab's resources.
func (s Snapshot) CurrentList() []flux.Resource {
	return s.List(s.Tab)
}

// CurrentSelected returns the active tab's cursor index.
func (s Snapshot) CurrentSelected() int {
	return s.Selected[s.Tab]
}

// SelectedResource returns the resource under the cursor, or false
// when the cursor is past the end of the list.
func (s Snapshot) SelectedResource() (flux.Resource, bool) {
	list := s.CurrentList()
	i := s.CurrentSelected()
	if i < 0 || i >= len(list) {
		return flux.Resource{}, false
	}
	return list[i], true
}
