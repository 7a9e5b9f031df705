// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func kustomizationObj(name, ns string, spec, status map[string]interface{}) *unstructured.Unstructured {
	obj := map[string]interface{}{
		"apiVersion": "kustomize.toolkit.fluxcd.io/v1",
		"kind":       "Kustomization",
		"metadata":   map[string]interface{}{"name": name, "namespace": ns},
	}
	if spec != nil {
		obj["spec"] = spec
	}
	if status != nil {
		obj["status"] = status
	}
	return &unstructured.Unstructured{Object: obj}
}

func TestKustomizationFrom(t *testing.T) {
	obj := kustomizationObj("apps", "flux-system",
		map[string]interface{}{
			"path":      "./clusters/prod",
			"suspend":   true,
			"sourceRef": map[string]interface{}{"kind": "GitRepository", "name": "fleet"},
		},
		map[string]interface{}{
			"lastAppliedRevision": "main@abcdef1234567890",
			"conditions": []interface{}{
				map[string]interface{}{"type": "Ready", "status": "True", "message": "Applied"},
			},
		})

	r := KustomizationFrom(obj)
	assert.Equal(t, KindKustomization, r.Kind)
	assert.Equal(t, "apps", r.Name)
	assert.Equal(t, "flux-system", r.Namespace)
	assert.Equal(t, "./clusters/prod", r.Path)
	assert.Equal(t, "GitRepository/fleet", r.SourceRef)
	assert.Equal(t, "main@abcdef1", r.Revision)
	// Suspend overrides the Ready condition.
	assert.Equal(t, StatusSuspended, r.Status)
	assert.True(t, r.IsSuspended())
}

func TestKustomizationFromDefaults(t *testing.T) {
	r := KustomizationFrom(kustomizationObj("apps", "flux-system", nil, nil))
	assert.Equal(t, "./", r.Path)
	assert.Equal(t, "unknown", r.SourceRef)
	assert.Empty(t, r.Revision)
	assert.Equal(t, StatusUnknown, r.Status)
	assert.Equal(t, "Status unknown", r.StatusMessage)
}

func TestKustomizationSourceRefDefaultKind(t *testing.T) {
	obj := kustomizationObj("apps", "flux-system",
		map[string]interface{}{
			"sourceRef": map[string]interface{}{"name": "fleet"},
		}, nil)
	assert.Equal(t, "GitRepository/fleet", KustomizationFrom(obj).SourceRef)
}

func TestHelmReleaseFrom(t *testing.T) {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "helm.toolkit.fluxcd.io/v2",
		"kind":       "HelmRelease",
		"metadata":   map[string]interface{}{"name": "podinfo", "namespace": "default"},
		"spec": map[string]interface{}{
			"chart": map[string]interface{}{
				"spec": map[string]interface{}{"chart": "podinfo", "version": "6.5.4"},
			},
		},
		"status": map[string]interface{}{
			"lastAppliedRevision": "6.5.4",
			"conditions": []interface{}{
				map[string]interface{}{"type": "Ready", "status": "True", "message": "Release reconciliation succeeded"},
			},
		},
	}}

	r := HelmReleaseFrom(obj)
	assert.Equal(t, KindHelmRelease, r.Kind)
	assert.Equal(t, "podinfo", r.Chart)
	assert.Equal(t, "6.5.4", r.ChartVersion)
	assert.Equal(t, "6.5.4", r.Revision)
	assert.Equal(t, StatusReady, r.Status)
	assert.True(t, r.IsReady())
}

func TestHelmReleaseFromMissingChart(t *testing.T) {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "helm.toolkit.fluxcd.io/v2",
		"kind":       "HelmRelease",
		"metadata":   map[string]interface{}{"name": "podinfo", "namespace": "default"},
	}}
	assert.Equal(t, "unknown", HelmReleaseFrom(obj).Chart)
}

func TestHelmChartFrom(t *testing.T) {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "source.toolkit.fluxcd.io/v1",
		"kind":       "HelmChart",
		"metadata":   map[string]interface{}{"name": "default-podinfo", "namespace": "flux-system"},
		"spec": map[string]interface{}{
			"chart":     "podinfo",
			"version":   "6.x",
			"sourceRef": map[string]interface{}{"kind": "HelmRepository", "name": "podinfo"},
		},
		"status": map[string]interface{}{
			"artifact": map[string]interface{}{"revision": "6.5.4"},
			"conditions": []interface{}{
				map[string]interface{}{"type": "Ready", "status": "True", "message": "pulled chart"},
			},
		},
	}}

	r := HelmChartFrom(obj)
	assert.Equal(t, KindHelmChart, r.Kind)
	assert.Equal(t, "podinfo", r.Chart)
	assert.Equal(t, "6.x", r.ChartVersion)
	assert.Equal(t, "HelmRepository/podinfo", r.SourceRef)
	assert.Equal(t, "6.5.4", r.Revision)
	assert.False(t, r.IsSuspended())
}

func TestConditionsSkipsMalformedEntries(t *testing.T) {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"status": map[string]interface{}{
			"conditions": []interface{}{
				"not a map",
				map[string]interface{}{"type": "Ready", "status": "True", "message": "ok"},
			},
		},
	}}

	conds := Conditions(obj)
	require.Len(t, conds, 1)
	assert.Equal(t, "Ready", conds[0].Type)
}
