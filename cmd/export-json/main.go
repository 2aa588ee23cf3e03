// Command export-json writes the recommender JSON database: a metadata
// envelope and every journal with its relations, sorted by rank.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"journal-recommender-api/config"
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
		outPath   string
		source    string
		publisher string
		version   string
	)

	flag.StringVar(&outPath, "out", "journals_database.json", "output file path")
	flag.StringVar(&source, "source", "Scimago Journal Rankings", "metadata source label")
	flag.StringVar(&publisher, "publisher", "", "metadata publisher label")
	flag.StringVar(&version, "version", "1.0", "metadata version")
	flag.Parse()

	db, release, err := config.OpenDB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer release()

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer out.Close()

	exporter := services.NewJournalExportService(db)
	if err := exporter.WriteDatabaseJSON(context.Background(), out, source, publisher, version); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	fmt.Printf("Wrote recommender database to %s\n", outPath)
}
