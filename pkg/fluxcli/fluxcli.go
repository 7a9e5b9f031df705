// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

// Package fluxcli drives the flux CLI for reconcile and suspend/resume
// operations. Flux's reconciliation logic (annotation patching, source
// ordering) lives in the CLI, so the dashboard shells out to it rather
// than reimplementing it.
package fluxcli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/fluxtop/fluxtop/pkg/flux"
)

// DefaultTimeout bounds a single CLI invocation. There is no retry;
// a timed-out or failed command is reported to the operator as-is.
const DefaultTimeout = 60 * time.Second

// Runner executes the flux binary. It exists so tests can substitute a
// fake and record the arguments.
type Runner interface {
	Run(ctx context.Context, args ...string) error
}

// execRunner invokes the real binary, capturing output for diagnostics.
type execRunner struct {
	path string
}

func (r *execRunner) Run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, r.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		if detail == "" {
			return fmt.Errorf("flux %s: %w", strings.Join(args, " "), err)
		}
		return fmt.Errorf("flux %s: %w: %s", strings.Join(args, " "), err, detail)
	}
	return nil
}

// CLI wraps the flux binary with single-attempt, bounded invocations.
type CLI struct {
	runner  Runner
	path    string
	timeout time.Duration
}

// New creates a CLI using "flux" from PATH.
func New() *CLI {
	return NewWithPath("flux")
}

// NewWithPath creates a CLI using a specific binary path.
func NewWithPath(path string) *CLI {
	return &CLI{
		runner:  &execRunner{path: path},
		path:    path,
		timeout: DefaultTimeout,
	}
}

// NewWithRunner creates a CLI around a custom runner, for tests.
func NewWithRunner(r Runner) *CLI {
	return &CLI{runner: r, path: "flux", timeout: DefaultTimeout}
}

// Available reports whether the flux binary can be invoked.
func (c *CLI) Available() bool {
	if c.path == "" {
		return false
	}
	return exec.Command(c.path, "--version").Run() == nil
}

// Reconcile triggers reconciliation of one resource, optionally
// reconciling its source first.
func (c *CLI) Reconcile(ctx context.Context, name, namespace string, kind flux.Kind, withSource bool) error {
	args := []string{"reconcile", kind.CLIArg(), name, "-n", namespace}
	if withSource {
		args = append(args, "--with-source")
	}
	return c.run(ctx, args)
}

// ToggleSuspend suspends a running resource or resumes a suspended
// one, based on its current state.
func (c *CLI) ToggleSuspend(ctx context.Context, name, namespace string, kind flux.Kind, suspended bool) error {
	verb := "suspend"
	if suspended {
		verb = "resume"
	}
	return c.run(ctx, []string{verb, kind.CLIArg(), name, "-n", namespace})
}

func (c *CLI) run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.runner.Run(ctx, args...)
}
