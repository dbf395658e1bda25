package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prode-api/config"
	"prode-api/packages/core/services"
	"prode-api/packages/core/sportsdb"

	"github.com/jonboulle/clockwork"
)

func main() {
	league := flag.String("league", "", "register a feed league id as a competition before syncing")
	season := flag.String("season", "", "season to sync (defaults to SPORTSDB_SEASON)")
	recent := flag.Bool("recent", false, "only sync the last and next rounds instead of the whole season")
	timeout := flag.Duration("timeout", 10*time.Minute, "give up after this long")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}
	if *season == "" {
		*season = cfg.Season
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	scoring := services.NewScoringService(config.DB, clockwork.NewRealClock())
	matches := services.NewMatchService(config.DB, scoring)
	feed := sportsdb.New(cfg.SportsDBBaseURL, cfg.SportsDBKey)
	syncer := services.NewSyncService(config.DB, feed, matches, *season, cfg.Location())

	if *league != "" {
		comp, err := syncer.SyncLeague(ctx, *league)
		if err != nil {
			log.Fatalf("league %s: %v", *league, err)
		}
		fmt.Printf("Competition %d: %s\n", comp.ID, comp.Name)
	}

	var report *services.SyncReport
	if *recent {
		report, err = syncer.SyncRecent(ctx)
	} else {
		report, err = syncer.SyncAll(ctx)
	}
	if err != nil {
		log.Fatalf("sync: %v", err)
	}

	fmt.Printf("Run %s: %d competitions, %d created, %d updated, %d finished, %d failed\n",
		report.RunID, report.Competitions, report.Created, report.Updated, report.Finished, report.Failed)
	if report.Failed > 0 {
		os.Exit(1)
	}
}
