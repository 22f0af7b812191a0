package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tend/internal/cli"
	"github.com/julianstephens/tend/internal/config"
	"github.com/julianstephens/tend/internal/gamification"
	"github.com/julianstephens/tend/internal/habit"
	"github.com/julianstephens/tend/internal/insights"
	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/wellness"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Data file path (.json or .db). Overrides the config file." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List habits with today's status." default:"1"`
		Done   cli.HabitDoneCmd   `cmd:"" help:"Toggle a habit completion."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit a habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
		Stats  cli.HabitStatsCmd  `cmd:"" help:"Show streaks and completion rate."`
	} `cmd:"" help:"Manage habits."`

	Wellness   cli.WellnessCmd   `cmd:"" help:"Track water, steps, sleep, and mood."`
	Level      cli.LevelCmd      `cmd:"" help:"Show XP and level."`
	Badges     cli.BadgesCmd     `cmd:"" help:"Show earned badges."`
	Challenges cli.ChallengesCmd `cmd:"" help:"Show and progress active challenges."`
	Insights   cli.InsightsCmd   `cmd:"" help:"Show and dismiss generated insights."`
	Patterns   cli.PatternsCmd   `cmd:"" help:"Show completion patterns per habit."`
	Suggest    cli.SuggestCmd    `cmd:"" help:"Suggest new habits to track."`
	Complete   cli.CompleteCmd   `cmd:"" help:"Request a code completion from the configured model."`
	History    cli.HistoryCmd    `cmd:"" help:"Show completion history."`
	Serve      cli.ServeCmd      `cmd:"" help:"Run the HTTP API server."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tend"),
		kong.Description("Habit tracking and daily wellness companion"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	dataPath := cfg.Data.Path
	if CLI.Data != "" {
		dataPath = CLI.Data
	}

	if err := os.MkdirAll(filepath.Dir(dataPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create data dir: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: filepath.Dir(dataPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Storage backend follows the file extension
	var store kvstore.Store
	if strings.HasSuffix(dataPath, ".json") {
		store, err = kvstore.OpenFile(dataPath)
	} else {
		store, err = kvstore.OpenSQLite(dataPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	habits := habit.NewRepository(store)
	defer habits.Close()

	if err := habits.InitializeDefaults(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to seed default habits: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Config:   cfg,
		Store:    store,
		Habits:   habits,
		Wellness: wellness.NewTracker(store, cfg.Goals.Steps, cfg.Goals.Water),
		Game:     gamification.NewService(store),
		Insights: insights.NewService(store),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
