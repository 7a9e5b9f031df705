// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package dash

import "github.com/fluxtop/fluxtop/pkg/flux"

// Tab identifies one of the three resource views.
type Tab int

const (
	TabKustomizations Tab = iota
	TabHelmReleases
	TabHelmCharts

	tabCount = 3
)

// Tabs returns all tabs in display order.
func Tabs() []Tab {
	return []Tab{TabKustomizations, TabHelmReleases, TabHelmCharts}
}

// Next wraps around to the first tab after the last.
func (t Tab) Next() Tab {
	return (t + 1) % tabCount
}

// Prev wraps around to the last tab before the first.
func (t Tab) Prev() Tab {
	return (t + tabCount - 1) % tabCount
}

// Title is the tab's display name.
func (t Tab) Title() string {
	switch t {
	case TabKustomizations:
		return "Kustomizations"
	case TabHelmReleases:
		return "HelmReleases"
	case TabHelmCharts:
		return "HelmCharts"
	}
	return ""
}

// Kind is the resource kind this tab lists.
func (t Tab) Kind() flux.Kind {
	switch t {
	case TabKustomizations:
		return flux.KindKustomization
	case TabHelmReleases:
		return flux.KindHelmRelease
	case TabHelmCharts:
		return flux.KindHelmChart
	}
	return ""
}
