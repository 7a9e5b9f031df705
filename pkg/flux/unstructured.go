// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package flux

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// KustomizationFrom builds a Kustomization record from the raw object.
func KustomizationFrom(obj *unstructured.Unstructured) Resource {
	suspended, _, _ := unstructured.NestedBool(obj.Object, "spec", "suspend")
	path, found, _ := unstructured.NestedString(obj.Object, "spec", "path")
	if !found {
		path = "./"
	}

	r := Resource{
		Kind:      KindKustomization,
		Name:      obj.GetName(),
		Namespace: obj.GetNamespace(),
		Suspended: suspended,
		Path:      path,
		SourceRef: sourceRef(obj, "GitRepository"),
	}

	if rev, found, _ := unstructured.NestedString(obj.Object, "status", "lastAppliedRevision"); found {
		r.Revision = FormatRevision(rev)
	}

	r.Status, r.StatusMessage = Classify(KindKustomization, Conditions(obj), suspended)
	return r
}

// HelmReleaseFrom builds a HelmRelease record from the raw object.
func HelmReleaseFrom(obj *unstructured.Unstructured) Resource {
	suspended, _, _ := unstructured.NestedBool(obj.Object, "spec", "suspend")

	chart, found, _ := unstructured.NestedString(obj.Object, "spec", "chart", "spec", "chart")
	if !found {
		chart = "unknown"
	}
	version, _, _ := unstructured.NestedString(obj.Object, "spec", "chart", "spec", "version")

	r := Resource{
		Kind:         KindHelmRelease,
		Name:         obj.GetName(),
		Namespace:    obj.GetNamespace(),
		Suspended:    suspended,
		Chart:        chart,
		ChartVersion: version,
	}

	r.Revision, _, _ = unstructured.NestedString(obj.Object, "status", "lastAppliedRevision")
	r.Status, r.StatusMessage = Classify(KindHelmRelease, Conditions(obj), suspended)
	return r
}

// HelmChartFrom builds a HelmChart record from the raw object.
// HelmCharts carry no suspend field, so the record is never Suspended.
func HelmChartFrom(obj *unstructured.Unstructured) Resource {
	chart, found, _ := unstructured.NestedString(obj.Object, "spec", "chart")
	if !found {
		chart = "unknown"
	}
	version, _, _ := unstructured.NestedString(obj.Object, "spec", "version")

	r := Resource{
		Kind:         KindHelmChart,
		Name:         obj.GetName(),
		Namespace:    obj.GetNamespace(),
		Chart:        chart,
		ChartVersion: version,
		SourceRef:    sourceRef(obj, "HelmRepository"),
	}

	r.Revision, _, _ = unstructured.NestedString(obj.Object, "status", "artifact", "revision")
	r.Status, r.StatusMessage = Classify(KindHelmChart, Conditions(obj), false)
	return r
}

// Conditions extracts status.conditions in the order the API server
// reported them. Malformed entries are skipped.
func Conditions(obj *unstructured.Unstructured) []Condition {
	raw, found, _ := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if !found {
		return nil
	}

	conditions := make([]Condition, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		condType, _ := m["type"].(string)
		condStatus, _ := m["status"].(string)
		reason, _ := m["reason"].(string)
		message, _ := m["message"].(string)
		conditions = append(conditions, Condition{
			Type:    condType,
			Status:  metav1.ConditionStatus(condStatus),
			Reason:  reason,
			Message: message,
		})
	}
	return conditions
}

// sourceRef formats spec.sourceRef as "Kind/name", defaulting the kind
// the way Flux does when it is omitted.
func sourceRef(obj *unstructured.Unstructured, defaultKind string) string {
	ref, found, _ := unstructured.NestedMap(obj.Object, "spec", "sourceRef")
	if !found {
		return "unknown"
	}
	kind, _ := ref["kind"].(string)
	if kind == "" {
		kind = defaultKind
	}
	name, _ := ref["name"].(string)
	if name == "" {
		name = "unknown"
	}
	return kind + "/" + name
}
