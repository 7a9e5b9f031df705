// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

// Package kube lists Flux resources and namespaces from the cluster.
package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/fluxtop/fluxtop/pkg/flux"
)

var (
	kustomizationGVR = schema.GroupVersionResource{Group: "kustomize.toolkit.fluxcd.io", Version: "v1", Resource: "kustomizations"}
	helmReleaseGVR   = schema.GroupVersionResource{Group: "helm.toolkit.fluxcd.io", Version: "v2", Resource: "helmreleases"}
	helmChartGVR     = schema.GroupVersionResource{Group: "source.toolkit.fluxcd.io", Version: "v1", Resource: "helmcharts"}
	namespaceGVR     = schema.GroupVersionResource{Group: "", Version: "v1", Resource: "namespaces"}
)

// Client lists Flux resources through the dynamic API.
type Client struct {
	dyn dynamic.Interface
}

// New creates a Client from a rest config.
func New(cfg *rest.Config) (*Client, error) {
	dyn, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}
	return &Client{dyn: dyn}, nil
}

// NewWithInterface creates a Client around an existing dynamic client.
// Tests use this with a fake.
func NewWithInterface(dyn dynamic.Interface) *Client {
	return &Client{dyn: dyn}
}

// BuildConfig resolves a rest config: in-cluster first, then the given
// kubeconfig path (or KUBECONFIG / ~/.kube/config), honoring an
// explicit context name.
func BuildConfig(kubeconfig, contextName string) (*rest.Config, error) {
	if kubeconfig == "" && contextName == "" {
		if cfg, err := rest.InClusterConfig(); err == nil {
			return cfg, nil
		}
	}

	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")
	}
	if kubeconfig == "" {
		home, _ := os.UserHomeDir()
		kubeconfig = filepath.Join(home, ".kube", "config")
	}

	if contextName == "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfig)
	}

	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig},
		&clientcmd.ConfigOverrides{CurrentContext: contextName},
	).ClientConfig()
}

// CurrentContext returns the active kubectl context name, used as the
// cluster name in the dashboard.
func CurrentContext() string {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{})

	rawConfig, err := kubeConfig.RawConfig()
	if err != nil || rawConfig.CurrentContext == "" {
		return "default"
	}
	return rawConfig.CurrentContext
}

// ListKustomizations lists Kustomizations, optionally scoped to one
// namespace (empty means all).
func (c *Client) ListKustomizations(ctx context.Context, namespace string) ([]flux.Resource, error) {
	return c.list(ctx, kustomizationGVR, namespace, flux.KustomizationFrom)
}

// ListHelmReleases lists HelmReleases.
func (c *Client) ListHelmReleases(ctx context.Context, namespace string) ([]flux.Resource, error) {
	return c.list(ctx, helmReleaseGVR, namespace, flux.HelmReleaseFrom)
}

// ListHelmCharts lists HelmCharts.
func (c *Client) ListHelmCharts(ctx context.Context, namespace string) ([]flux.Resource, error) {
	return c.list(ctx, helmChartGVR, namespace, flux.HelmChartFrom)
}

// ListNamespaces returns namespace names in the order the API server
// reports them.
func (c *Client) ListNamespaces(ctx context.Context) ([]string, error) {
	list, err := c.dyn.Resource(namespaceGVR).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	names := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		names = append(names, item.GetName())
	}
	return names, nil
}

func (c *Client) list(ctx context.Context, gvr schema.GroupVersionResource, namespace string, build func(*unstructured.Unstructured) flux.Resource) ([]flux.Resource, error) {
	var list *unstructured.UnstructuredList
	var err error
	if namespace != "" {
		list, err = c.dyn.Resource(gvr).Namespace(namespace).List(ctx, metav1.ListOptions{})
	} else {
		list, err = c.dyn.Resource(gvr).List(ctx, metav1.ListOptions{})
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", gvr.Resource, err)
	}

	resources := make([]flux.Resource, 0, len(list.Items))
	for i := range list.Items {
		resources = append(resources, build(&list.Items[i]))
	}
	return resources, nil
}
