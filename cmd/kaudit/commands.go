package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/kaudit/internal/config"
	"github.com/pankaj-dahiya-devops/kaudit/internal/engine"
	"github.com/pankaj-dahiya-devops/kaudit/internal/output"
	manifestpack "github.com/pankaj-dahiya-devops/kaudit/internal/rulepacks/kubernetes_manifest"
	"github.com/pankaj-dahiya-devops/kaudit/internal/rules"
	"github.com/pankaj-dahiya-devops/kaudit/internal/version"
)

func newRootCmd() *cobra.Command {
	var (
		file       string
		configPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:   "kaudit",
		Short: "Audit a Kubernetes manifest for common configuration gaps",
		Long: "kaudit parses a multi-document Kubernetes manifest and prints one observation per line:\n" +
			"exposed ports, missing resource limits and health probes, Service type and missing RBAC objects.\n" +
			"Without --file the manifest compiled into the binary is audited.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, logLevel)
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg.Log, cmd.ErrOrStderr())

			registry := rules.NewDefaultRuleRegistry()
			for _, r := range manifestpack.New() {
				registry.Register(r)
			}
			eng := engine.NewManifestEngine(registry, logger)

			report, err := eng.RunAudit(cmd.Context(), engine.AuditOptions{
				Path:  file,
				Stdin: cmd.InOrStdin(),
			})
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}
			return output.RenderLines(cmd.OutOrStdout(), report.Findings)
		},
	}

	root.Flags().StringVarP(&file, "file", "f", "", `Manifest file to audit ("-" reads stdin; default: embedded manifest)`)
	root.Flags().StringVar(&configPath, "config", "", "Config file path (default: $KAUDIT_CONFIG or ~/.config/kaudit/config.yaml)")
	root.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config and $KAUDIT_LOG_LEVEL)")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// loadConfig loads the config file and applies the --log-level override.
func loadConfig(path, logLevel string) (*config.Config, error) {
	cfg, err := config.NewFileLoader(path).Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if errs := config.Validate(cfg); len(errs) > 0 {
			return nil, fmt.Errorf("--log-level: %w", errors.Join(errs...))
		}
	}
	return cfg, nil
}
