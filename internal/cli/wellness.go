package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/tend/internal/models"
)

type WellnessCmd struct {
	Today  WellnessTodayCmd  `cmd:"" help:"Show today's wellness summary." default:"1"`
	Water  WellnessWaterCmd  `cmd:"" help:"Log a glass of water."`
	Steps  WellnessStepsCmd  `cmd:"" help:"Record today's step count."`
	Sleep  WellnessSleepCmd  `cmd:"" help:"Log last night's sleep."`
	Mood      WellnessMoodCmd      `cmd:"" help:"Log today's mood."`
	Focus     WellnessFocusCmd     `cmd:"" help:"Log a focus session."`
	Gratitude WellnessGratitudeCmd `cmd:"" help:"Record gratitude entries."`
	Breathe   WellnessBreatheCmd   `cmd:"" help:"Mark today's breathing exercise done."`
	Posture   WellnessPostureCmd   `cmd:"" help:"Mark today's posture check done."`
	Streak    WellnessStreakCmd    `cmd:"" help:"Show the wellness streak."`
}

type WellnessTodayCmd struct{}

func (c *WellnessTodayCmd) Run(ctx *Context) error {
	today, err := ctx.Wellness.TodayData(time.Now())
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Wellness " + today.Date))
	fmt.Printf("  Water: %d/%d glasses\n", today.Water.Glasses, today.Water.Goal)
	fmt.Printf("  Steps: %d/%d\n", today.Steps.Steps, today.Steps.Goal)
	if today.Sleep != nil {
		fmt.Printf("  Sleep: %.1fh (score %d)\n", today.Sleep.Duration, today.Sleep.Score)
	} else {
		fmt.Println(dimStyle.Render("  Sleep: not logged"))
	}
	if today.Mood != nil {
		fmt.Printf("  Mood:  %s %s\n", today.Mood.Emoji, today.Mood.Note)
	} else {
		fmt.Println(dimStyle.Render("  Mood:  not logged"))
	}
	return nil
}

type WellnessWaterCmd struct {
	Goal int `help:"Set a new daily glasses goal instead of logging a glass."`
}

func (c *WellnessWaterCmd) Run(ctx *Context) error {
	now := time.Now()
	if c.Goal > 0 {
		if err := ctx.Wellness.SetWaterGoal(c.Goal, now); err != nil {
			return err
		}
		fmt.Printf("Water goal set to %d glasses\n", c.Goal)
		return nil
	}

	glasses, err := ctx.Wellness.AddWaterGlass(now)
	if err != nil {
		return err
	}
	fmt.Printf("Logged a glass of water (%d today)\n", glasses)
	return nil
}

type WellnessStepsCmd struct {
	Count int `arg:"" help:"Step count for today."`
}

func (c *WellnessStepsCmd) Run(ctx *Context) error {
	if err := ctx.Wellness.SetSteps(c.Count, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Steps recorded: %d\n", c.Count)
	return nil
}

type WellnessSleepCmd struct {
	Duration float64 `arg:"" help:"Hours slept."`
	Bedtime  string  `short:"b" help:"Bedtime (HH:MM)."`
	Wake     string  `short:"w" help:"Wake time (HH:MM)."`
	Score    int     `short:"s" help:"Sleep quality score (0-100)." default:"75"`
}

func (c *WellnessSleepCmd) Run(ctx *Context) error {
	sleep := models.SleepLog{
		Bedtime:  c.Bedtime,
		WakeTime: c.Wake,
		Duration: c.Duration,
		Score:    c.Score,
	}
	if err := ctx.Wellness.SetSleep(sleep, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Sleep logged: %.1fh\n", c.Duration)
	return nil
}

type WellnessMoodCmd struct {
	Emoji string `arg:"" help:"Mood emoji."`
	Note  string `arg:"" optional:"" help:"Optional note."`
}

func (c *WellnessMoodCmd) Run(ctx *Context) error {
	mood := models.MoodEntry{Emoji: c.Emoji, Note: c.Note}
	if err := ctx.Wellness.SetMood(mood, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Mood logged: %s\n", c.Emoji)
	return nil
}

type WellnessFocusCmd struct {
	Minutes   int  `arg:"" help:"Session length in minutes."`
	Abandoned bool `help:"Record the session as abandoned."`
}

func (c *WellnessFocusCmd) Run(ctx *Context) error {
	focus := models.FocusSession{Duration: c.Minutes, Completed: !c.Abandoned}
	if err := ctx.Wellness.SetFocus(focus, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Focus session logged: %d minutes\n", c.Minutes)
	return nil
}

type WellnessGratitudeCmd struct {
	Entries []string `arg:"" help:"Things you're grateful for today."`
}

func (c *WellnessGratitudeCmd) Run(ctx *Context) error {
	if err := ctx.Wellness.SetGratitude(c.Entries, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Recorded %d gratitude entries\n", len(c.Entries))
	return nil
}

type WellnessBreatheCmd struct{}

func (c *WellnessBreatheCmd) Run(ctx *Context) error {
	if err := ctx.Wellness.CompleteBreathing(time.Now()); err != nil {
		return err
	}
	fmt.Println("Breathing exercise complete")
	return nil
}

type WellnessPostureCmd struct{}

func (c *WellnessPostureCmd) Run(ctx *Context) error {
	if err := ctx.Wellness.CompletePosture(time.Now()); err != nil {
		return err
	}
	fmt.Println("Posture check complete")
	return nil
}

type WellnessStreakCmd struct{}

func (c *WellnessStreakCmd) Run(ctx *Context) error {
	streak, err := ctx.Wellness.Streak(time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Wellness streak: %d days\n", streak)
	return nil
}
