// Command export-csv writes flattened CSV projections of the journal data:
// the complete per-journal table and the two shared dictionaries.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

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

	var outDir string
	flag.StringVar(&outDir, "dir", "csv_export", "output directory")
	flag.Parse()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	db, release, err := config.OpenDB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer release()

	exporter := services.NewJournalExportService(db)
	ctx := context.Background()

	files := []struct {
		name  string
		write func(context.Context, io.Writer) error
	}{
		{"journals_complete.csv", exporter.WriteJournalsCSV},
		{"journals_basic.csv", exporter.WriteJournalsBasicCSV},
		{"journal_scopes.csv", exporter.WriteScopesCSV},
		{"categories.csv", exporter.WriteCategoriesCSV},
		{"subject_areas.csv", exporter.WriteSubjectAreasCSV},
	}

	for _, f := range files {
		path := filepath.Join(outDir, f.name)
		out, err := os.Create(path)
		if err != nil {
			log.Fatalf("create %s: %v", path, err)
		}
		if err := f.write(ctx, out); err != nil {
			out.Close()
			log.Fatalf("export %s: %v", f.name, err)
		}
		out.Close()
		fmt.Printf("Wrote %s\n", path)
	}
}
