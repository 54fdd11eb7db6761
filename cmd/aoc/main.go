package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pefman/aoc-leaderboard/internal/aoc"
	"github.com/pefman/aoc-leaderboard/internal/config"
	"github.com/pefman/aoc-leaderboard/internal/render"
	"github.com/pefman/aoc-leaderboard/internal/stats"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	cfg, err := config.Resolve(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aoc: %v\n\n%s\n", err, config.Usage)
		os.Exit(2)
	}

	// AOC_BASE_URL is a dev/test override; empty means production.
	client := aoc.NewClient(os.Getenv("AOC_BASE_URL"))
	lb, err := client.FetchLeaderboard(context.Background(), cfg.BoardID, cfg.Session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aoc: %v\n", err)
		os.Exit(1)
	}

	members := stats.Compute(lb)
	render.Overall(os.Stdout, lb.Event, members, lb.NumDays)
	render.Days(os.Stdout, stats.BuildDayTables(members, lb.NumDays))
}
