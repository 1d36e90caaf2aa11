// ringpong is a circular two-player pong for the terminal.
//
// Usage:
//
//	ringpong play            - Hot-seat match in this terminal
//	ringpong menu            - Menu with hot-seat play and longest rallies
//	ringpong serve           - SSH server with online host/join matches
//	ringpong scores          - Show longest rallies and recent online matches
//	ringpong sim             - Headless run with bots, prints a summary
//
// Global flags:
//
//	--fps <rate>          - Loop frame rate (default: from config, 30)
//	--seed <value>        - RNG seed for reproducible serves
//	--db <path>           - Database path (default: ~/.ringpong/ringpong.db)
//	--config <path>       - Custom ringpong YAML
//	--difficulty <name>   - easy, normal or hard
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagWinScore   int
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ringpong",
	Short: "Ringpong - circular pong in your terminal",
	Long: `Ringpong is a two-player pong played inside a circle. Each player
turns a paddle around the rim; a ball that slips past the rim scores for
the other side.

Available commands:
  play     - Hot-seat match on one keyboard
  menu     - Interactive menu
  serve    - Start SSH server for online matches
  scores   - View longest rallies and recent matches
  sim      - Headless bot match for tuning configs

Examples:
  ringpong play
  ringpong play --difficulty hard --win-score 5
  ringpong serve --ssh :2222
  ringpong sim --ticks 9000 --seed 42`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Loop frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ringpong/ringpong.db", "Path to rallies database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom ringpong config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound cues")
	rootCmd.PersistentFlags().IntVar(&flagWinScore, "win-score", -1, "Points to win (0 = endless, -1 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// loadGameConfig resolves the ringpong config from --config, the preset and
// the override flags.
func loadGameConfig() (config.RingPongConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.Loop.FrameRate = flagFPS
	}
	if flagWinScore >= 0 {
		cfg.Gameplay.WinScore = flagWinScore
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}

	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runtimeConfig builds the runtime config for a width x height terminal.
func runtimeConfig(cfg config.RingPongConfig, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FrameRate: cfg.Loop.FrameRate,
		Seed:      flagSeed,
	}
}

// newLogger returns a logger writing to w, or to --log-file when set.
// Full-screen commands pass io.Discard so logs never touch the alt screen.
// The returned function closes the log file.
func newLogger(w io.Writer, prefix string) (*log.Logger, func()) {
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			w = f
			closer = func() {
				//nolint:errcheck // Best-effort close
				f.Close()
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer
}

// mustGameConfig loads the config or exits.
func mustGameConfig() config.RingPongConfig {
	cfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
