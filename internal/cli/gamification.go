package cli

import (
	"fmt"
	"time"
)

type LevelCmd struct{}

func (c *LevelCmd) Run(ctx *Context) error {
	level, err := ctx.Game.Level()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Level %d", level.Level)))
	fmt.Printf("  Total XP:       %d\n", level.TotalXP)
	fmt.Printf("  Into level:     %d XP\n", level.CurrentXP)
	fmt.Printf("  To next level:  %d XP\n", level.XPToNextLevel)
	return nil
}

type BadgesCmd struct {
	All bool `short:"a" help:"Include badges not yet earned."`
}

func (c *BadgesCmd) Run(ctx *Context) error {
	earned, err := ctx.Game.EarnedBadges()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Earned badges (%d)", len(earned))))
	for _, b := range earned {
		when := ""
		if b.EarnedAt != nil {
			when = dimStyle.Render("  earned " + b.EarnedAt.Format("2006-01-02"))
		}
		fmt.Printf("  %s %s%s\n", doneStyle.Render(b.Name), b.Description, when)
	}
	if len(earned) == 0 {
		fmt.Println(dimStyle.Render("  none yet"))
	}

	if !c.All {
		return nil
	}

	available, err := ctx.Game.AvailableBadges()
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("Still locked (%d)", len(available))))
	for _, b := range available {
		fmt.Printf("  %s %s\n", pendingStyle.Render(b.Name), b.Description)
	}
	return nil
}

type ChallengesCmd struct {
	Progress string `short:"p" help:"Challenge ID to increment progress on."`
	By       int    `help:"Progress increment." default:"1"`
}

func (c *ChallengesCmd) Run(ctx *Context) error {
	if c.Progress != "" {
		challenge, rewarded, err := ctx.Game.UpdateChallengeProgress(c.Progress, c.By)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d/%d\n", challenge.Title, challenge.CurrentCount, challenge.TargetCount)
		if rewarded {
			fmt.Println(titleStyle.Render(fmt.Sprintf("Challenge complete! +%d XP", challenge.Reward)))
		}
		return nil
	}

	active, err := ctx.Game.ActiveChallenges(time.Now())
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Active challenges"))
	for _, ch := range active {
		mark := pendingStyle.Render("[ ]")
		if ch.Completed {
			mark = doneStyle.Render("[x]")
		}
		fmt.Printf("%s %-20s %d/%d (+%d XP, ends %s)%s\n",
			mark, ch.Title, ch.CurrentCount, ch.TargetCount, ch.Reward,
			ch.EndDate.Format("2006-01-02"), dimStyle.Render("  "+ch.ID))
	}
	return nil
}
