package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"prode-api/config"
	"prode-api/migrations"
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

	migrator, err := migrations.NewMigrator(config.DB, migrations.GetAllMigrations()...)
	if err != nil {
		log.Fatal(err)
	}

	switch command := os.Args[1]; command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			log.Fatal("Migration failed: ", err)
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			s, err := strconv.Atoi(os.Args[2])
			if err != nil || s < 1 {
				log.Fatalf("invalid step count %q", os.Args[2])
			}
			steps = s
		}
		if err := migrator.Rollback(steps); err != nil {
			log.Fatal("Rollback failed: ", err)
		}
	case "status":
		if err := showStatus(migrator); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Rollback migration batches (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show migration status")
}

func showStatus(migrator *migrations.Migrator) error {
	applied, err := migrator.Applied()
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		fmt.Println("No migrations have been run yet.")
		return nil
	}

	fmt.Println("Batch | Name")
	fmt.Println("------|-----")
	for _, m := range applied {
		fmt.Printf("%-5d | %s\n", m.Batch, m.Name)
	}
	return nil
}
