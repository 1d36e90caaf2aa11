package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ringpong/internal/audio"
	"github.com/vovakirdan/ringpong/internal/platform/tui"
	"github.com/vovakirdan/ringpong/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a hot-seat match",
	Long: `Start a two-player match on one keyboard.

Controls:
  Left/Right   - Turn the red paddle
  A/D          - Turn the green paddle
  P            - Pause
  R            - Restart
  Esc/B        - Leave the match
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a text screenshot

Difficulty options:
  easy   - Slower ball, wider paddles
  normal - Values from the config file
  hard   - Faster ball, narrower paddles, more jitter

Examples:
  ringpong play
  ringpong play --difficulty easy
  ringpong play --win-score 7 --mute
  ringpong play --config ./my-ringpong.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustGameConfig()

	logger, closeLog := newLogger(io.Discard, "ringpong")
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rallies database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	cues, closeAudio := audio.Open(cfg.Audio, flagMute, logger)

	opts := tui.GameOptions{
		Config:  cfg,
		Runtime: runtimeConfig(cfg, width, height),
		Cues:    cues,
		Logger:  logger,
	}
	if store != nil {
		opts.Store = store
	}

	_, runErr := tui.RunGame(opts)

	closeAudio()
	if store != nil {
		//nolint:errcheck // Closing after the game
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
