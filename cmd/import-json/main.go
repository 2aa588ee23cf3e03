// Command import-json restores or merges the journal database from a
// recommender JSON export.
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
		filePath string
		trigger  string
		migrate  bool
	)

	flag.StringVar(&filePath, "file", "", "path to the recommender JSON export (required)")
	flag.StringVar(&trigger, "trigger", "import-json", "trigger source label stored in journal_import_runs")
	flag.BoolVar(&migrate, "migrate", false, "create or update the schema before importing")
	flag.Parse()

	if filePath == "" {
		log.Fatal("-file is required")
	}

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open export: %v", err)
	}
	database, err := services.ReadRecommenderDatabase(file)
	file.Close()
	if err != nil {
		log.Fatalf("parse export: %v", err)
	}
	log.Printf("Loaded %d journals exported at %s", len(database.Journals), database.Metadata.LastUpdated)

	var records []*services.JournalRecord
	skipped := 0
	for i := range database.Journals {
		record, err := services.RecordFromExportedJournal(&database.Journals[i])
		if err != nil {
			log.Printf("skipping journal %q: %v", database.Journals[i].Title, err)
			skipped++
			continue
		}
		records = append(records, record)
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
	summary, err := job.RunRecords(context.Background(), records, trigger)
	if err != nil {
		log.Fatalf("restore failed: %v", err)
	}

	fmt.Printf("Records processed: %d (created: %d, updated: %d, failed: %d, skipped: %d)\n",
		summary.RecordsProcessed,
		summary.RecordsCreated,
		summary.RecordsUpdated,
		summary.RecordsFailed,
		skipped,
	)
	for _, failed := range summary.Failed {
		fmt.Printf("Failed: %s (source %s): %s\n", failed.Title, failed.SourceID, failed.Reason)
	}
	if summary.RecordsFailed > 0 {
		os.Exit(2)
	}
}
