// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

// Package dash is the dashboard's state engine: the action protocol,
// the aggregate application state, the popup state machine, the
// refresh orchestrator and the command dispatcher. Rendering and key
// handling live in the caller; they feed Actions in and read
// Snapshots out.
package dash

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fluxtop/fluxtop/internal/clierr"
	"github.com/fluxtop/fluxtop/pkg/flux"
)

// Client lists cluster state. Implemented by pkg/kube; tests use a
// fake. An empty namespace means all namespaces.
type Client interface {
	ListKustomizations(ctx context.Context, namespace string) ([]flux.Resource, error)
	ListHelmReleases(ctx context.Context, namespace string) ([]flux.Resource, error)
	ListHelmCharts(ctx context.Context, namespace string) ([]flux.Resource, error)
	ListNamespaces(ctx context.Context) ([]string, error)
}

// Reconciler triggers reconciliation work through an external tool.
// Implemented by pkg/fluxcli; tests use a fake. Both calls are single
// attempt: the engine never retries.
type Reconciler interface {
	Reconcile(ctx context.Context, name, namespace string, kind flux.Kind, withSource bool) error
	ToggleSuspend(ctx context.Context, name, namespace string, kind flux.Kind, suspended bool) error
}

// Options configures a new App.
type Options struct {
	ClusterName string
	Namespace   string // initial namespace filter, "" = all
	Logf        func(format string, args ...interface{})
}

// App is the single aggregate state. One App exists per process; it is
// mutated exclusively by Update, one action at a time. Readers take a
// Snapshot between actions.
type App struct {
	client Client
	rec    Reconciler
	logf   func(format string, args ...interface{})

	tab             Tab
	kustomizations  []flux.Resource
	helmReleases    []flux.Resource
	helmCharts      []flux.Resource
	selected        [tabCount]int
	namespaceFilter *string
	namespaces      []string
	popup           Popup
	loading         bool
	lastError       string
	clusterName     string
}

// New creates the App. The caller performs the initial refresh by
// sending ActionRefresh before the first render.
func New(client Client, rec Reconciler, opts Options) *App {
	a := &App{
		client:      client,
		rec:         rec,
		logf:        opts.Logf,
		clusterName: opts.ClusterName,
		loading:     true,
	}
	if opts.Namespace != "" {
		ns := opts.Namespace
		a.namespaceFilter = &ns
	}
	return a
}

// Update applies one action to completion. It is the sole writer of
// App state and may block on network or process I/O for the actions
// Action.Blocks reports. Unhandled actions leave state unchanged.
func (a *App) Update(ctx context.Context, action Action) error {
	switch action.Type {
	case ActionNone, ActionQuit:
		// Quit is handled by the event loop.
		return nil
	case ActionRefresh:
		// Periodic refresh keeps running while overlays are open.
		a.refresh(ctx)
		return nil
	case ActionSetNamespace:
		a.setNamespace(ctx, action.Namespace)
		return nil
	}

	if a.popup != nil {
		a.updatePopup(ctx, action)
		return nil
	}

	switch action.Type {
	case ActionNextTab:
		a.tab = a.tab.Next()
	case ActionPrevTab:
		a.tab = a.tab.Prev()
	case ActionUp:
		if i := a.selected[a.tab]; i > 0 {
			a.selected[a.tab] = i - 1
		}
	case ActionDown:
		if count := len(a.list(a.tab)); count > 0 {
			if i := a.selected[a.tab] + 1; i > count-1 {
				a.selected[a.tab] = count - 1
			} else {
				a.selected[a.tab] = i
			}
		}
	case ActionTop:
		a.selected[a.tab] = 0
	case ActionBottom:
		if count := len(a.list(a.tab)); count > 0 {
			a.selected[a.tab] = count - 1
		}
	case ActionSelect:
		if r, ok := a.selectedResource(); ok {
			a.popup = ResourceDetailsPopup{Resource: r}
		}
	case ActionFilterNamespace:
		list := make([]string, 0, len(a.namespaces)+1)
		list = append(list, AllNamespacesLabel)
		list = append(list, a.namespaces...)
		a.popup = NamespaceFilterPopup{Namespaces: list, Selected: 0}
	case ActionReconcile:
		a.reconcileSelected(ctx, false)
	case ActionReconcileWithSource:
		a.reconcileSelected(ctx, true)
	case ActionToggleSuspend:
		a.toggleSuspendSelected(ctx)
	}
	return nil
}

// updatePopup routes actions while an overlay is active.
func (a *App) updatePopup(ctx context.Context, action Action) {
	switch p := a.popup.(type) {
	case NamespaceFilterPopup:
		switch action.Type {
		case ActionUp:
			if p.Selected > 0 {
				p.Selected--
				a.popup = p
			}
		case ActionDown:
			if p.Selected < len(p.Namespaces)-1 {
				p.Selected++
				a.popup = p
			}
		case ActionSelect:
			switch {
			case p.Selected == 0:
				a.setNamespace(ctx, nil)
			case p.Selected < len(p.Namespaces):
				ns := p.Namespaces[p.Selected]
				a.setNamespace(ctx, &ns)
			}
		case ActionClosePopup:
			a.popup = nil
		}
	default:
		if action.Type == ActionClosePopup && a.popup.Dismissable() {
			a.popup = nil
		}
	}
}

// setNamespace applies the filter, closes the popup and refreshes.
func (a *App) setNamespace(ctx context.Context, ns *string) {
	if a.popup != nil && !a.popup.Dismissable() {
		return
	}
	a.namespaceFilter = ns
	a.popup = nil
	a.refresh(ctx)
}

// refresh fetches the three resource lists and the namespace
// inventory concurrently. Either all four results replace the old
// state as one group, or the whole fetch is discarded and only
// lastError changes. Nothing is ever merged partially.
func (a *App) refresh(ctx context.Context) {
	a.loading = true

	ns := ""
	if a.namespaceFilter != nil {
		ns = *a.namespaceFilter
	}

	var (
		kustomizations []flux.Resource
		helmReleases   []flux.Resource
		helmCharts     []flux.Resource
		namespaces     []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		kustomizations, err = a.client.ListKustomizations(gctx, ns)
		return err
	})
	g.Go(func() error {
		var err error
		helmReleases, err = a.client.ListHelmReleases(gctx, ns)
		return err
	})
	g.Go(func() error {
		var err error
		helmCharts, err = a.client.ListHelmCharts(gctx, ns)
		return err
	})
	g.Go(func() error {
		var err error
		namespaces, err = a.client.ListNamespaces(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		a.lastError = fmt.Sprintf("failed to fetch resources: %s", clierr.Summarize(err))
		a.log("refresh failed: %v", err)
		a.loading = false
		return
	}

	a.kustomizations = kustomizations
	a.helmReleases = helmReleases
	a.helmCharts = helmCharts
	a.namespaces = namespaces
	a.lastError = ""
	a.loading = false
	a.log("refresh ok: %d kustomizations, %d helmreleases, %d helmcharts, %d namespaces",
		len(kustomizations), len(helmReleases), len(helmCharts), len(namespaces))
}

// reconcileSelected dispatches a reconcile for the selected resource.
// The Reconciling overlay is entered before the external call and
// holds until the call returns; there is no cancellation.
func (a *App) reconcileSelected(ctx context.Context, withSource bool) {
	r, ok := a.selectedResource()
	if !ok {
		return
	}

	a.popup = ReconcilingPopup{Name: r.Name, Namespace: r.Namespace}
	a.log("reconcile %s %s/%s withSource=%v", r.Kind, r.Namespace, r.Name, withSource)

	if err := a.rec.Reconcile(ctx, r.Name, r.Namespace, r.Kind, withSource); err != nil {
		a.popup = ErrorPopup{Message: fmt.Sprintf("Reconcile failed: %v", err)}
		a.log("reconcile failed: %v", err)
		return
	}

	a.popup = nil
	a.refresh(ctx)
}

// toggleSuspendSelected suspends or resumes the selected resource.
// HelmCharts have no suspend operation; the action is a no-op there.
func (a *App) toggleSuspendSelected(ctx context.Context) {
	r, ok := a.selectedResource()
	if !ok || !r.Kind.CanSuspend() {
		return
	}

	a.log("toggle suspend %s %s/%s suspended=%v", r.Kind, r.Namespace, r.Name, r.Suspended)

	if err := a.rec.ToggleSuspend(ctx, r.Name, r.Namespace, r.Kind, r.Suspended); err != nil {
		a.popup = ErrorPopup{Message: fmt.Sprintf("Toggle suspend failed: %v", err)}
		a.log("toggle suspend failed: %v", err)
		return
	}

	a.refresh(ctx)
}

func (a *App) list(t Tab) []flux.Resource {
	switch t {
	case TabKustomizations:
		return a.kustomizations
	case TabHelmReleases:
		return a.helmReleases
	case TabHelmCharts:
		return a.helmCharts
	}
	return nil
}

// selectedResource returns a copy of the resource under the cursor,
// or false when the index is past the end of the current list.
func (a *App) selectedResource() (flux.Resource, bool) {
	list := a.list(a.tab)
	i := a.selected[a.tab]
	if i < 0 || i >= len(list) {
		return flux.Resource{}, false
	}
	return list[i], true
}

func (a *App) log(format string, args ...interface{}) {
	if a.logf != nil {
		a.logf(format, args...)
	}
}
