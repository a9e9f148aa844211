package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexanderramin/casewalk/internal/cli/formatter"
	"github.com/alexanderramin/casewalk/internal/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// skipBootstrap marks commands that must run without opening the store.
const skipBootstrap = "casewalk/skip-bootstrap"

func shouldSkipBootstrap(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipBootstrap] == "true" {
			return true
		}
	}
	return false
}

func newConfigCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Inspect or create the configuration file",
		Annotations: map[string]string{skipBootstrap: "true"},
	}

	cmd.AddCommand(
		newConfigInitCmd(configPath),
		newConfigShowCmd(configPath),
	)

	return cmd
}

func newConfigInitCmd(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an annotated sample config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(*configPath)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("check config %s: %w", path, err)
				}
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("Wrote"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			body, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			out := cmd.OutOrStdout()
			source := "built-in defaults"
			if cfg.SourcePath != "" {
				source = cfg.SourcePath
			}
			fmt.Fprintln(out, formatter.Dim("# source: "+source))
			fmt.Fprint(out, string(body))
			return nil
		},
	}
}
