package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tend/internal/insights"
	"github.com/julianstephens/tend/internal/models"
)

type InsightsCmd struct {
	List    InsightsListCmd    `cmd:"" help:"Show active insights." default:"1"`
	Dismiss InsightsDismissCmd `cmd:"" help:"Dismiss an insight by ID."`
	Reset   InsightsResetCmd   `cmd:"" help:"Clear all dismissals."`
}

type InsightsListCmd struct{}

func (c *InsightsListCmd) Run(ctx *Context) error {
	habits, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	active, err := ctx.Insights.ActiveInsights(habits, time.Now())
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Insights"))
	for _, in := range active {
		style := pendingStyle
		switch in.Priority {
		case models.PriorityHigh:
			style = warnStyle
		case models.PriorityMedium:
			style = doneStyle
		}
		fmt.Printf("%s %s\n", style.Render("["+string(in.Priority)+"]"), in.Title)
		fmt.Printf("      %s%s\n", in.Description, dimStyle.Render("  "+in.ID))
	}
	return nil
}

type InsightsDismissCmd struct {
	ID string `arg:"" help:"Insight ID."`
}

func (c *InsightsDismissCmd) Run(ctx *Context) error {
	if err := ctx.Insights.Dismiss(c.ID); err != nil {
		return err
	}
	fmt.Printf("Dismissed insight %s\n", c.ID)
	return nil
}

type InsightsResetCmd struct{}

func (c *InsightsResetCmd) Run(ctx *Context) error {
	if err := ctx.Insights.ClearDismissed(); err != nil {
		return err
	}
	fmt.Println("Cleared all insight dismissals")
	return nil
}

type PatternsCmd struct{}

func (c *PatternsCmd) Run(ctx *Context) error {
	habits, err := ctx.Habits.List()
	if err != nil {
		return err
	}

	patterns := insights.AnalyzeAllPatterns(habits, time.Now())
	if len(patterns) == 0 {
		fmt.Println("Not enough history yet. Patterns need at least a week of completions.")
		return nil
	}

	fmt.Println(titleStyle.Render("Patterns"))
	for _, p := range patterns {
		fmt.Printf("  %-28s best on %s (%d%% rate)\n",
			p.HabitName, strings.Join(p.BestDays, ", "), p.AverageCompletionRate)
	}
	return nil
}

type SuggestCmd struct{}

func (c *SuggestCmd) Run(ctx *Context) error {
	habits, err := ctx.Habits.List()
	if err != nil {
		return err
	}

	suggestions := insights.GenerateSuggestions(habits)
	if len(suggestions) == 0 {
		fmt.Println("No suggestions right now; you're already tracking the catalog.")
		return nil
	}

	fmt.Println(titleStyle.Render("Suggested habits"))
	for _, s := range suggestions {
		fmt.Printf("  %-24s %s %s\n", s.Name, s.Reason,
			dimStyle.Render(fmt.Sprintf("(%s, %s)", s.Difficulty, s.EstimatedTime)))
	}
	return nil
}
