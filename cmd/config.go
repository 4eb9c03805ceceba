package cmd

import (
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/perfil/internal/config"
	"github.com/abhisek/perfil/internal/ui/theme"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long: `Display the resolved configuration.

Precedence (highest to lowest):
  1. Command-line flags
  2. Environment variables (PERFIL_*)
  3. Config file (--config or ~/.config/perfil/config.yaml)
  4. Defaults`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		rows := make([][]string, 0, len(config.Keys))
		for _, k := range config.Keys {
			source := "-"
			if _, ok := os.LookupEnv(config.EnvName(k)); ok {
				source = config.EnvName(k)
			}
			rows = append(rows, []string{k, cfg.Get(k), source})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			Headers("Key", "Value", "Env override").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				style := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return style.Foreground(theme.Primary).Bold(true)
				}
				if col == 0 {
					return style.Foreground(theme.Text)
				}
				return style.Foreground(theme.TextDim)
			})

		file := cfg.File
		if file == "" {
			file = config.GlobalPath() + " (not found)"
		}

		fmt.Fprintln(out, theme.Title.Render("Configuration"))
		fmt.Fprintln(out, t)
		fmt.Fprintln(out, "Config file:", file)
		return nil
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the resolved configuration to the config file",
	// The target file may not exist yet, so resolve without reading it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupFrom(cmd, "")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.GlobalPath()
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Write(cfg, path); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		logger.Info().Str("path", path).Msg("config written")
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}
