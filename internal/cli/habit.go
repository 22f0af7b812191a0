package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tend/internal/habit"
)

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Icon     string `short:"i" help:"Icon name. Inferred from the name when omitted."`
	Color    string `short:"c" help:"Hex color." default:"#29ABE2"`
	Reminder string `short:"r" help:"Daily reminder time (HH:MM)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	icon := c.Icon
	if icon == "" {
		icon = habit.DefaultIconFor(c.Name)
	}

	h, err := ctx.Habits.Add(habit.NewHabit{
		Name:         c.Name,
		Icon:         icon,
		Color:        c.Color,
		ReminderTime: c.Reminder,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", h.Name, shortID(h.ID))
	return nil
}

type HabitListCmd struct {
	All bool `short:"a" help:"Show full IDs and creation dates."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'tend habit add <name>'.")
		return nil
	}

	now := time.Now()
	fmt.Println(titleStyle.Render("Habits"))
	for _, h := range habit.SortedByName(habits) {
		stats := habit.Stats(h, now)

		mark := pendingStyle.Render("[ ]")
		if habit.IsCompletedToday(h, now) {
			mark = doneStyle.Render("[x]")
		}

		line := fmt.Sprintf("%s %-28s streak %-3d rate %3d%%", mark, h.Name, stats.CurrentStreak, stats.CompletionRate)
		if c.All {
			line += dimStyle.Render(fmt.Sprintf("  %s  created %s", h.ID, h.CreatedAt.Format("2006-01-02")))
		} else {
			line += dimStyle.Render("  " + shortID(h.ID))
		}
		fmt.Println(line)
	}
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix, or name."`
	Date  string `short:"d" help:"Completion date (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	h, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	now := time.Now()
	date := c.Date
	if date == "" {
		date = habit.Today(now)
	}

	updated, completed, err := ctx.Habits.ToggleCompletion(h.ID, date)
	if err != nil {
		return err
	}

	if !completed {
		fmt.Printf("Unmarked %s for %s\n", updated.Name, date)
		return nil
	}

	streak := habit.CurrentStreak(updated.CompletedDates, now)
	xp, level, leveledUp, err := ctx.Game.AwardCompletionXP(streak)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s for %s (+%d XP, streak %d)\n", doneStyle.Render("Completed"), updated.Name, date, xp, streak)
	if leveledUp {
		fmt.Println(titleStyle.Render(fmt.Sprintf("Level up! You are now level %d", level.Level)))
	}

	habits, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	newBadges, err := ctx.Game.CheckAndAwardBadges(habits, now)
	if err != nil {
		return err
	}
	for _, b := range newBadges {
		fmt.Printf("%s %s: %s\n", titleStyle.Render("Badge earned!"), b.Name, b.Description)
	}
	return nil
}

type HabitEditCmd struct {
	Habit    string  `arg:"" help:"Habit ID, ID prefix, or name."`
	Name     *string `help:"New name."`
	Icon     *string `help:"New icon."`
	Color    *string `help:"New hex color."`
	Reminder *string `help:"New reminder time (HH:MM). Pass an empty string to clear."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	h, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	updated, found, err := ctx.Habits.Update(h.ID, habit.Patch{
		Name:         c.Name,
		Icon:         c.Icon,
		Color:        c.Color,
		ReminderTime: c.Reminder,
	})
	if err != nil {
		return err
	}
	if !found {
		return habit.ErrNotFound
	}

	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix, or name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	h, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			fmt.Printf("No habit matches %q; nothing to delete.\n", c.Habit)
			return nil
		}
		return err
	}

	if err := ctx.Habits.Delete(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitStatsCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix, or name."`
}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	h, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	stats := habit.Stats(h, time.Now())
	fmt.Println(titleStyle.Render(h.Name))
	fmt.Printf("  Current streak:  %d days\n", stats.CurrentStreak)
	fmt.Printf("  Longest streak:  %d days\n", stats.LongestStreak)
	fmt.Printf("  Total completed: %d\n", stats.TotalCompleted)
	fmt.Printf("  Completion rate: %d%%\n", stats.CompletionRate)
	return nil
}
