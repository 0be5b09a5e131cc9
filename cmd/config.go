package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hance08/txengine/internal/app"
	"github.com/hance08/txengine/internal/ui/prompts"
	"github.com/hance08/txengine/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the txengine configuration",
	}

	configCmd.AddCommand(NewConfigShowCmd())
	configCmd.AddCommand(NewConfigInitCmd())

	return configCmd
}

func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long:  `Display the configuration file in use and every effective setting after flags and TXENGINE_* environment overrides.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := cfg.ConfigPath
			exists := configPath != ""
			if !exists {
				configPath = "(None, using defaults)"
			}

			return views.RenderSystemInfo(cmd.OutOrStdout(), views.SystemInfoItem{
				ConfigPath:           configPath,
				ConfigExists:         exists,
				AppDataDir:           appDataDirOrUnknown(),
				LogLevel:             cfg.Log.Level,
				LogFormat:            cfg.Log.Format,
				MemoryBackend:        cfg.Memory.Backend,
				MemoryPath:           cfg.Memory.Path,
				ExpectedTransactions: cfg.Memory.ExpectedTransactions,
				OutputPath:           cfg.Output.Path,
				Summary:              cfg.Output.Summary,
				MetricsTextfile:      cfg.Metrics.Textfile,
			})
		},
	}
}

func NewConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively create the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := prompts.PromptConfig(prompts.ConfigAnswers{
				LogLevel:      cfg.Log.Level,
				LogFormat:     cfg.Log.Format,
				MemoryBackend: cfg.Memory.Backend,
				Summary:       cfg.Output.Summary,
			})
			if err != nil {
				return err
			}

			path, err := saveConfig(answers)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Configuration saved to %s\n", path)
			return nil
		},
	}
}

func saveConfig(answers prompts.ConfigAnswers) (string, error) {
	viper.Set("log.level", answers.LogLevel)
	viper.Set("log.format", answers.LogFormat)
	viper.Set("memory.backend", answers.MemoryBackend)
	viper.Set("output.summary", answers.Summary)

	path := cfgFile
	if path == "" {
		appDir, err := app.AppDataDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(appDir, "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to save config to file: %w", err)
	}

	return path, nil
}

func appDataDirOrUnknown() string {
	dir, err := app.AppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
