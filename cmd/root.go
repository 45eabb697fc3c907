package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"jukebox/config"
	"jukebox/logger"
	"jukebox/machine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jukebox",
	Short: "An RFID/NFC tag jukebox",
	Long: `Jukebox plays a sound file whenever an RFID/NFC tag is held to a
keyboard-emulating reader. Tag identifiers are mapped to files in the
configuration, and two push buttons on GPIO lines raise and lower the volume.

Scanning a new tag stops the current sound before the next one starts.`,
	SilenceUsage: true,
	RunE:         runJukebox,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("sounds", "sounds", "directory containing the sound files")
	rootCmd.PersistentFlags().String("backend", config.BackendSpeaker, "audio backend (speaker, pulse)")
	rootCmd.PersistentFlags().Int("volume", 100, "initial volume in percent")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	// Local flags for the daemon
	rootCmd.Flags().StringP("device", "d", "/dev/input/event0", "path to the tag reader device")
	rootCmd.Flags().String("input-type", config.InputKeyboard, "tag reader type (keyboard, serial)")
	rootCmd.Flags().IntP("baud", "b", 9600, "baud rate of serial readers")
	rootCmd.Flags().Bool("no-buttons", false, "do not poll the GPIO volume buttons")

	// Bind flags to viper
	viper.BindPFlag("sounds.path", rootCmd.PersistentFlags().Lookup("sounds"))
	viper.BindPFlag("audio.backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("audio.volume", rootCmd.PersistentFlags().Lookup("volume"))
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("input.device", rootCmd.Flags().Lookup("device"))
	viper.BindPFlag("input.type", rootCmd.Flags().Lookup("input-type"))
	viper.BindPFlag("input.baud", rootCmd.Flags().Lookup("baud"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if verbose {
		viper.Set("logging.level", "debug")
	}
}

// loadConfig loads and validates the configuration, then sets up logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return cfg, nil
}

// runJukebox starts the main application
func runJukebox(cmd *cobra.Command, args []string) error {
	if noButtons, _ := cmd.Flags().GetBool("no-buttons"); noButtons {
		viper.Set("buttons.enabled", false)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("Jukebox starting", slog.String("version", Version))

	// Create and initialize the machine
	m := machine.New(cfg)
	if err := m.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize machine: %w", err)
	}

	// Start the machine
	if err := m.Start(); err != nil {
		m.Stop()
		return fmt.Errorf("failed to start machine: %w", err)
	}

	// Setup graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal or error
	var runErr error
	select {
	case sig := <-signalChan:
		slog.Info("Received signal, shutting down", slog.String("signal", sig.String()))
	case runErr = <-m.Error():
		slog.Error("Jukebox failed", slog.Any("error", runErr))
	}

	// Graceful shutdown
	if err := m.Stop(); err != nil {
		return fmt.Errorf("failed to stop machine gracefully: %w", err)
	}

	return runErr
}
