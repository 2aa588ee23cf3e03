// Command scrape-scopes fetches journal pages from SCImago for the journals
// listed in an export file, extracts each scope narrative and stores it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"journal-recommender-api/config"
	"journal-recommender-api/models"
	"journal-recommender-api/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	var (
		csvPath string
		delayMs int
		limit   int
		migrate bool
	)

	flag.StringVar(&csvPath, "csv", "", "SCImago export listing the journals to scrape (required)")
	flag.IntVar(&delayMs, "delay-ms", 1500, "fixed delay between page fetches in milliseconds")
	flag.IntVar(&limit, "limit", 0, "maximum number of journals to scrape (optional)")
	flag.BoolVar(&migrate, "migrate", false, "create or update the schema before scraping")
	flag.Parse()

	if csvPath == "" {
		log.Fatal("-csv is required")
	}
	if limit < 0 {
		log.Fatal("limit must be greater than or equal to 0")
	}

	csvFile, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	rows, err := services.ReadScimagoCSV(csvFile)
	csvFile.Close()
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}

	var targets []services.ScrapeTarget
	for _, row := range rows {
		if row.SourceID == "" {
			continue
		}
		targets = append(targets, services.ScrapeTarget{SourceID: row.SourceID, Title: row.Title})
		if limit > 0 && len(targets) == limit {
			break
		}
	}
	log.Printf("Scraping scope text for %d journals", len(targets))

	db, release, err := config.OpenDB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer release()

	if migrate {
		if err := models.AutoMigrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	scraper := services.NewScopeScrapeService(db, nil, time.Duration(delayMs)*time.Millisecond)
	summary, err := scraper.RunForTargets(context.Background(), targets)
	if err != nil {
		log.Fatalf("scrape failed: %v", err)
	}

	fmt.Printf("Journals processed: %d (scopes found: %d, failed: %d)\n",
		summary.JournalsProcessed,
		summary.ScopesFound,
		summary.JournalsFailed,
	)
	for _, failed := range summary.Failed {
		fmt.Printf("Failed: %s (source %s): %s\n", failed.Title, failed.SourceID, failed.Reason)
	}
	if summary.JournalsFailed > 0 {
		os.Exit(2)
	}
}
