package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"prode-api/config"
	"prode-api/fixtures"

	"github.com/jonboulle/clockwork"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}

	fixtureManager := fixtures.NewFixtures(config.DB, clockwork.NewRealClock(), time.Now().UnixNano())
	ctx := context.Background()

	switch command := os.Args[1]; command {
	case "generate":
		if _, err := fixtureManager.GenerateTestData(ctx); err != nil {
			log.Fatal("Failed to generate fixtures: ", err)
		}
		fmt.Println("Fixtures generated successfully")
	case "clear":
		if err := fixtureManager.ClearAllData(); err != nil {
			log.Fatal("Failed to clear fixtures: ", err)
		}
		fmt.Println("All fixture data cleared")
	case "regenerate":
		if err := fixtureManager.ClearAllData(); err != nil {
			log.Fatal("Failed to clear fixtures: ", err)
		}
		if _, err := fixtureManager.GenerateTestData(ctx); err != nil {
			log.Fatal("Failed to generate fixtures: ", err)
		}
		fmt.Println("Fixtures regenerated successfully")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate    - Generate users, matches, tournaments and scored predictions")
	fmt.Println("  go run ./cmd/fixtures clear       - Clear all fixture data")
	fmt.Println("  go run ./cmd/fixtures regenerate  - Clear and regenerate all data")
}
