package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jukebox/library"
	"jukebox/playback"

	"github.com/spf13/cobra"
)

// playCmd plays the sound of a single tag without a reader
var playCmd = &cobra.Command{
	Use:   "play <tag-id>",
	Short: "Play the sound mapped to a tag",
	Long:  "Play the sound mapped to a tag identifier through the configured audio output and wait until it ends.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		lib := library.New(cfg.Sounds.Path, cfg.Sounds.Tags)
		sink, err := playback.OpenSink(cfg.Audio)
		if err != nil {
			return fmt.Errorf("failed to open audio output: %w", err)
		}
		player, err := playback.NewController(lib, sink, cfg.Audio.Volume)
		if err != nil {
			sink.Close()
			return err
		}
		defer player.Close()

		if err := player.Play(args[0]); err != nil {
			return err
		}

		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for player.Playing() {
			select {
			case <-ticker.C:
			case sig := <-signalChan:
				slog.Info("Interrupted", slog.String("signal", sig.String()))
				return nil
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
