package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
	}

	if err := checkDataReadable(ctx); err != nil {
		fmt.Printf("❌ Data readable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data readable: OK\n")
	}

	if err := checkSingleInstance(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock sanity: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock sanity: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	key := "doctor_probe"
	if err := ctx.Store.Set(key, "1"); err != nil {
		return fmt.Errorf("store write failed: %w", err)
	}
	if _, _, err := ctx.Store.Get(key); err != nil {
		return fmt.Errorf("store read failed: %w", err)
	}
	if err := ctx.Store.Delete(key); err != nil {
		return fmt.Errorf("store delete failed: %w", err)
	}
	return nil
}

func checkDataReadable(ctx *Context) error {
	habits, err := ctx.Habits.List()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	seen := make(map[string]bool)
	for _, h := range habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		seen[h.ID] = true
	}

	if _, err := ctx.Wellness.History(); err != nil {
		return fmt.Errorf("failed to load wellness history: %w", err)
	}
	if _, err := ctx.Game.TotalXP(); err != nil {
		return fmt.Errorf("failed to load XP: %w", err)
	}
	return nil
}

// checkSingleInstance warns when another tend process is running. Two
// writers against one data file can interleave read-modify-write cycles.
func checkSingleInstance() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	binary := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.TrimSuffix(p.Executable(), ".exe") == binary {
			return fmt.Errorf("another %s process is running (pid %d); concurrent writes may conflict", binary, p.Pid())
		}
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
