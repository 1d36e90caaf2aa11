package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringpong/internal/core"
	"github.com/vovakirdan/ringpong/internal/games/ringpong"
)

var (
	flagSimTicks   int
	flagSimBots    bool
	flagSimBotTurn int
	flagSimShow    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless match",
	Long: `Run a match without a terminal UI on a simulated clock and print a
summary. With the same seed and config the result is identical, which makes
it useful for tuning configs and reproducing bugs.

Examples:
  ringpong sim
  ringpong sim --seed 42 --ticks 18000
  ringpong sim --bots=false --show
  ringpong sim --difficulty hard --bot-turn 1`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 9000, "Ticks to simulate")
	simCmd.Flags().BoolVar(&flagSimBots, "bots", true, "Let bots turn both paddles")
	simCmd.Flags().IntVar(&flagSimBotTurn, "bot-turn", 2, "Max detents a bot turns per tick")
	simCmd.Flags().BoolVar(&flagSimShow, "show", false, "Print the final frame")
}

// simStats accumulates step results.
type simStats struct {
	ticks    int
	bounces  int
	misses   [3]int // Indexed by core.PlayerID
	respawns int
	rallies  int
	longest  int
}

func (s *simStats) observe(res core.StepResult) {
	s.ticks++
	if res.Bounced {
		s.bounces++
	}
	if res.Missed {
		s.misses[res.MissedBy]++
		if res.FinishedRally > 0 {
			s.rallies++
			s.longest = max(s.longest, res.FinishedRally)
		}
	}
	if res.Respawn {
		s.respawns++
	}
}

func runSim(_ *cobra.Command, _ []string) {
	cfg := mustGameConfig()
	cfg.Audio.Enabled = false

	logger, closeLog := newLogger(os.Stderr, "ringpong-sim")
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.DefaultConfig()
	runtime.FrameRate = cfg.Loop.FrameRate
	runtime.Seed = seed

	clock := core.NewManualClock(time.Unix(0, 0).UTC())
	enc1, enc2 := core.NewEncoder(), core.NewEncoder()
	game := ringpong.New(cfg, runtime, ringpong.Deps{
		Input1: enc1,
		Input2: enc2,
		Clock:  clock,
		Logger: logger,
	})

	var bots []*ringpong.Bot
	if flagSimBots {
		bots = append(bots,
			ringpong.NewBot(core.Player1, enc1, flagSimBotTurn),
			ringpong.NewBot(core.Player2, enc2, flagSimBotTurn),
		)
	}

	var stats simStats
	runner := ringpong.NewRunner(game, nil, clock, logger)
	runner.MaxTicks = flagSimTicks
	runner.OnStep = func(res core.StepResult) {
		stats.observe(res)
		for _, b := range bots {
			b.Drive(game)
		}
	}

	start := time.Now()
	if err := runner.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if flagSimShow {
		screen := core.NewScreen(runtime.ScreenW, runtime.ScreenH)
		ringpong.Render(screen, game.Frame())
		fmt.Println(screen.String())
		fmt.Println()
	}

	state := game.State()
	snap := game.Snapshot()
	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Ticks:       %d (%s of play, simulated in %s)\n",
		stats.ticks, (time.Duration(stats.ticks) * runner.Interval()).Round(time.Second), elapsed.Round(time.Millisecond))
	fmt.Printf("Score:       %d : %d\n", state.Score1, state.Score2)
	if state.GameOver {
		fmt.Printf("Winner:      %s\n", state.Winner)
	}
	fmt.Printf("Bounces:     %d\n", stats.bounces)
	fmt.Printf("Misses:      %d by %s, %d by %s\n",
		stats.misses[core.Player1], core.Player1, stats.misses[core.Player2], core.Player2)
	fmt.Printf("Rallies:     %d (longest %d)\n", stats.rallies, stats.longest)
	fmt.Printf("Respawns:    %d\n", stats.respawns)
	fmt.Printf("State hash:  %016x\n", snap.Hash())
}
