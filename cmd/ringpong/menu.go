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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start ringpong with a menu",
	Long: `Start ringpong in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a match you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  ringpong menu
  ringpong menu --fps 60
  ringpong menu --db ./ringpong.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg := mustGameConfig()

	logger, closeLog := newLogger(io.Discard, "ringpong")
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rallies database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			//nolint:errcheck // Closing on exit
			store.Close()
		}
	}()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	cfg := runtimeConfig(gameCfg, width, height)

	cues, closeAudio := audio.Open(gameCfg.Audio, flagMute, logger)
	defer closeAudio()

	var saver tui.RallySaver
	var source tui.RallySource
	if store != nil {
		saver, source = store, store
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceHotSeat:
			backToMenu, gameErr := tui.RunGame(tui.GameOptions{
				Config:  gameCfg,
				Runtime: cfg,
				Store:   saver,
				Cues:    cues,
				Logger:  logger,
			})
			if gameErr != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", gameErr)
				return
			}
			if !backToMenu {
				return
			}

		case tui.ChoiceScores:
			goBack, sbErr := tui.RunScoreboard(source, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
				return
			}
			if !goBack {
				return
			}

		default:
			return
		}
	}
}
