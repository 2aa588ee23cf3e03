// Command scimago-import loads a SCImago journal export into the database,
// optionally enriched with previously scraped page text.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

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
		csvPath    string
		scopesPath string
		trigger    string
		migrate    bool
	)

	flag.StringVar(&csvPath, "csv", "", "path to the semicolon-delimited SCImago export (required)")
	flag.StringVar(&scopesPath, "scopes", "", "path to a scraped-scopes JSON file (optional)")
	flag.StringVar(&trigger, "trigger", "scimago-import", "trigger source label stored in journal_import_runs")
	flag.BoolVar(&migrate, "migrate", false, "create or update the schema before importing")
	flag.Parse()

	if csvPath == "" {
		log.Fatal("-csv is required")
	}

	csvFile, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer csvFile.Close()

	rows, err := services.ReadScimagoCSV(csvFile)
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}
	log.Printf("Parsed %d journals from %s", len(rows), csvPath)

	if scopesPath != "" {
		scopesFile, err := os.Open(scopesPath)
		if err != nil {
			log.Fatalf("open scopes file: %v", err)
		}
		scopes, err := services.ReadScrapedScopes(scopesFile)
		scopesFile.Close()
		if err != nil {
			log.Fatalf("parse scopes file: %v", err)
		}
		enriched := 0
		for _, row := range rows {
			if raw, ok := scopes[row.SourceID]; ok {
				row.RawScope = raw
				enriched++
			}
		}
		log.Printf("Enriched %d journals with scraped scope text", enriched)
	}

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

	job := services.NewJournalImportJobService(db)
	summary, err := job.RunRows(context.Background(), rows, trigger)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Records processed: %d (created: %d, updated: %d, failed: %d)\n",
		summary.RecordsProcessed,
		summary.RecordsCreated,
		summary.RecordsUpdated,
		summary.RecordsFailed,
	)
	fmt.Printf("ISSNs inserted: %d, category links inserted: %d, updated: %d, area links inserted: %d\n",
		summary.Sync.IssnsInserted,
		summary.Sync.CategoryLinksInserted,
		summary.Sync.CategoryLinksUpdated,
		summary.Sync.AreaLinksInserted,
	)

	for _, failed := range summary.Failed {
		fmt.Printf("Failed: %s (source %s): %s\n", failed.Title, failed.SourceID, failed.Reason)
	}
	if summary.RecordsFailed > 0 {
		os.Exit(2)
	}
}
