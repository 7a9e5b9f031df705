// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package flux

import (
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// transientReasons lists, per kind, the Ready=False reasons that mean
// "still working" rather than "broken". A HelmRelease reports
// ArtifactFailed transiently while its chart is being rebuilt, so it
// gets the extra carve-out. HelmCharts have none: any False is Failed.
var transientReasons = map[Kind][]string{
	KindKustomization: {"Progressing"},
	KindHelmRelease:   {"Progressing", "ArtifactFailed"},
	KindHelmChart:     {},
}

// Classify derives the status taxonomy value and display message for a
// resource from its condition list and suspend flag.
//
// Precedence: suspend wins over everything. Otherwise the first Ready
// condition in the list (order as received) decides; failing that, the
// first Reconciling=True condition; failing that, Unknown.
func Classify(kind Kind, conditions []Condition, suspended bool) (Status, string) {
	if suspended {
		return StatusSuspended, "Suspended"
	}

	for _, c := range conditions {
		if c.Type != "Ready" {
			continue
		}
		msg := conditionMessage(c)
		switch c.Status {
		case metav1.ConditionTrue:
			return StatusReady, msg
		case metav1.ConditionFalse:
			if isTransientReason(kind, c.Reason) {
				return StatusReconciling, msg
			}
			return StatusFailed, msg
		case metav1.ConditionUnknown:
			return StatusReconciling, msg
		}
	}

	for _, c := range conditions {
		if c.Type == "Reconciling" && c.Status == metav1.ConditionTrue {
			return StatusReconciling, conditionMessage(c)
		}
	}

	return StatusUnknown, "Status unknown"
}

func isTransientReason(kind Kind, reason string) bool {
	for _, r := range transientReasons[kind] {
		if r == reason {
			return true
		}
	}
	return false
}

func conditionMessage(c Condition) string {
	if c.Message == "" {
		return "Unknown"
	}
	return c.Message
}

// FormatRevision shortens a revision identifier for display. A
// "branch@sha" pair keeps the branch and the first 7 characters of the
// sha; anything else is cut to 12 characters. Counts are rune-based so
// non-ASCII revisions are never split mid-character.
func FormatRevision(revision string) string {
	if parts := strings.Split(revision, "@"); len(parts) == 2 {
		sha := []rune(parts[1])
		if len(sha) > 7 {
			sha = sha[:7]
		}
		return parts[0] + "@" + string(sha)
	}
	runes := []rune(revision)
	if len(runes) > 12 {
		runes = runes[:12]
	}
	return string(runes)
}
