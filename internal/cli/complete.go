package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tend/internal/completion"
)

type CompleteCmd struct {
	File     string  `arg:"" optional:"" help:"Source file to complete. Reads stdin when omitted."`
	Language string  `short:"l" help:"Language hint (e.g. javascript, go, python)."`
	Cursor   int     `short:"c" help:"Cursor byte offset. Defaults to end of input." default:"-1"`
	Model    string  `short:"m" help:"Override the configured model."`
	Temp     float64 `help:"Sampling temperature." default:"0.2"`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	var code []byte
	var err error
	if c.File != "" {
		code, err = os.ReadFile(c.File)
	} else {
		code, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	cursor := c.Cursor
	if cursor < 0 || cursor > len(code) {
		cursor = len(code)
	}

	client, err := completion.NewClient(ctx.Config.Ollama)
	if err != nil {
		return err
	}

	resp, err := client.Complete(context.Background(), completion.Request{
		Code:           string(code),
		Language:       c.Language,
		CursorPosition: cursor,
		Model:          c.Model,
		Temperature:    c.Temp,
	})
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}

	fmt.Println(resp.Completion)
	meta := fmt.Sprintf("%s, %dms", resp.Model, resp.DurationMS)
	if resp.Tokens != nil {
		meta += fmt.Sprintf(", %d tokens", resp.Tokens.Completion)
	}
	fmt.Fprintln(os.Stderr, dimStyle.Render(meta))

	history := completion.NewHistory(ctx.Store)
	return history.Add(completion.HistoryItem{
		ID:         uuid.New().String(),
		Language:   c.Language,
		Code:       string(code),
		Completion: resp.Completion,
		Model:      resp.Model,
		CreatedAt:  time.Now().UTC(),
	})
}

type HistoryCmd struct {
	Clear  bool   `help:"Delete all completion history."`
	Delete string `short:"d" help:"Delete one history item by ID."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	history := completion.NewHistory(ctx.Store)

	if c.Clear {
		if err := history.Clear(); err != nil {
			return err
		}
		fmt.Println("Completion history cleared")
		return nil
	}
	if c.Delete != "" {
		if err := history.Delete(c.Delete); err != nil {
			return err
		}
		fmt.Printf("Deleted history item %s\n", c.Delete)
		return nil
	}

	items, err := history.List()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No completions recorded yet.")
		return nil
	}

	fmt.Println(titleStyle.Render("Completion history"))
	for _, item := range items {
		fmt.Printf("  %s  %-10s %s %s\n",
			item.CreatedAt.Local().Format("2006-01-02 15:04"),
			item.Language, item.Model, dimStyle.Render(shortID(item.ID)))
	}
	return nil
}
