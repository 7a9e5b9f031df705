// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

// Command fluxtop is a terminal dashboard for Flux CD resources.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fluxtop/fluxtop/internal/clierr"
	"github.com/fluxtop/fluxtop/internal/dash"
	"github.com/fluxtop/fluxtop/pkg/fluxcli"
	"github.com/fluxtop/fluxtop/pkg/kube"
)

var (
	// BuildTag is set during build
	BuildTag = "dev"
	// BuildDate is set during build
	BuildDate = "unknown"
)

var (
	flagNamespace  string
	flagContext    string
	flagKubeconfig string
	flagRefresh    int
)

var rootCmd = &cobra.Command{
	Use:   "fluxtop",
	Short: "Terminal dashboard for Flux CD",
	Long: `fluxtop - a terminal dashboard for Flux CD

fluxtop watches Kustomizations, HelmReleases and HelmCharts in a
cluster and lets you act on them:

  - Browse resources per kind, with readiness at a glance
  - Trigger reconciliation, with or without refetching the source
  - Suspend and resume reconciliation
  - Filter everything by namespace

Reconcile and suspend shell out to the flux CLI, which must be on
PATH (or set via config or FLUXTOP_FLUX_PATH).

Configuration is read from ~/.fluxtop/config.yaml; flags override it.

Environment Variables:
  KUBECONFIG              Path to kubeconfig file (default: ~/.kube/config)
  FLUXTOP_FLUX_PATH       Path to the flux binary (default: flux)
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagNamespace, "namespace", "n", "", "Only show resources in this namespace")
	rootCmd.Flags().StringVar(&flagContext, "context", "", "Kubeconfig context to use")
	rootCmd.Flags().StringVar(&flagKubeconfig, "kubeconfig", "", "Path to kubeconfig file")
	rootCmd.Flags().IntVar(&flagRefresh, "refresh-interval", 0, "Seconds between automatic refreshes (default 5)")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fluxtop version %s (built %s)\n", BuildTag, BuildDate)
		},
	})

	// Add completion command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for fluxtop.

Bash:
  $ source <(fluxtop completion bash)

Zsh:
  $ fluxtop completion zsh > "${fpath[1]}/_fluxtop"

Fish:
  $ fluxtop completion fish | source

PowerShell:
  PS> fluxtop completion powershell | Out-String | Invoke-Expression
`,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	})
}

func runDashboard() error {
	cfg, err := dash.LoadConfig(dash.DefaultConfigPath())
	if err != nil {
		return err
	}
	if flagNamespace != "" {
		cfg.Namespace = flagNamespace
	}
	if flagContext != "" {
		cfg.Context = flagContext
	}
	if flagKubeconfig != "" {
		cfg.Kubeconfig = flagKubeconfig
	}
	if flagRefresh > 0 {
		cfg.RefreshInterval = flagRefresh
	}

	restCfg, err := kube.BuildConfig(cfg.Kubeconfig, cfg.Context)
	if err != nil {
		fmt.Fprintln(os.Stderr, clierr.Pretty(err))
		return fmt.Errorf("connect to cluster: %w", err)
	}
	client, err := kube.New(restCfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	cli := fluxcli.NewWithPath(cfg.FluxPath)
	fluxMissing := !cli.Available()

	logger, err := NewSessionLogger()
	if err != nil {
		// Run without a log file rather than refuse to start.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger = nil
	}
	defer func() {
		if path := logger.Close(); path != "" {
			fmt.Fprintf(os.Stderr, "Session log: %s\n", path)
		}
	}()

	clusterName := cfg.Context
	if clusterName == "" {
		clusterName = kube.CurrentContext()
	}

	app := dash.New(client, cli, dash.Options{
		ClusterName: clusterName,
		Namespace:   cfg.Namespace,
		Logf:        logger.Logf,
	})

	// First fetch happens before the terminal switches to the alternate
	// screen, so connection problems surface as plain output.
	logger.Logf("connecting to cluster %s", clusterName)
	if err := app.Update(context.Background(), dash.Action{Type: dash.ActionRefresh}); err != nil {
		logger.Logf("initial fetch failed: %v", err)
	}
	if fluxMissing {
		logger.Logf("flux CLI not found at %q, reconcile and suspend disabled", cfg.FluxPath)
	}

	m := newModel(app, time.Duration(cfg.RefreshInterval)*time.Second, fluxMissing)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
