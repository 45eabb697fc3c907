package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"jukebox/config"
	"jukebox/library"
	"jukebox/logger"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Commands for managing and validating jukebox configuration.",
}

// configValidateCmd validates the current configuration
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  "Validate the configuration file, environment variables and the sound files the tags refer to.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Setup basic logging for validation
		if err := logger.Setup("info", "text"); err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			slog.Error("Configuration validation failed", slog.Any("error", err))
			return err
		}

		missing := 0
		for _, entry := range library.New(cfg.Sounds.Path, cfg.Sounds.Tags).Entries() {
			if !entry.Exists {
				slog.Warn("Sound file missing", slog.String("tag", entry.ID), slog.String("path", entry.Path))
				missing++
			}
		}

		slog.Info("Configuration is valid", slog.Int("tags", len(cfg.Sounds.Tags)), slog.Int("missing", missing))
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Configuration is valid")
		return nil
	},
}

// configShowCmd shows the current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current configuration values and the tag mapping.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Setup("info", "text"); err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintf(w, "  Input:\n")
	fmt.Fprintf(w, "    Type: %s\n", cfg.Input.Type)
	fmt.Fprintf(w, "    Device: %s\n", cfg.Input.Device)
	if cfg.Input.Type == config.InputSerial {
		fmt.Fprintf(w, "    Baud: %d\n", cfg.Input.Baud)
	}
	fmt.Fprintf(w, "  Buttons:\n")
	fmt.Fprintf(w, "    Enabled: %t\n", cfg.Buttons.Enabled)
	fmt.Fprintf(w, "    Chip: %s (raise %d, lower %d)\n", cfg.Buttons.Chip, cfg.Buttons.RaisePin, cfg.Buttons.LowerPin)
	fmt.Fprintf(w, "    Hold-off: %s\n", cfg.Buttons.HoldOff)
	fmt.Fprintf(w, "    Step: %d%%\n", cfg.Buttons.Step)
	fmt.Fprintf(w, "  Audio:\n")
	fmt.Fprintf(w, "    Backend: %s\n", cfg.Audio.Backend)
	fmt.Fprintf(w, "    Sample rate: %d\n", cfg.Audio.SampleRate)
	fmt.Fprintf(w, "    Volume: %d%%\n", cfg.Audio.Volume)
	fmt.Fprintf(w, "  Logging:\n")
	fmt.Fprintf(w, "    Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "    Format: %s\n", cfg.Logging.Format)
	fmt.Fprintf(w, "  Sounds: %s\n", cfg.Sounds.Path)

	for _, entry := range library.New(cfg.Sounds.Path, cfg.Sounds.Tags).Entries() {
		marker := ""
		if !entry.Exists {
			marker = " (missing)"
		}
		fmt.Fprintf(w, "    %s -> %s%s\n", entry.ID, entry.File, marker)
	}
}
