package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadRecommenderDatabase decodes a previously exported recommender JSON
// document, used to restore or merge a database from a backup.
func ReadRecommenderDatabase(r io.Reader) (*RecommenderDatabase, error) {
	var database RecommenderDatabase
	if err := json.NewDecoder(r).Decode(&database); err != nil {
		return nil, fmt.Errorf("decode recommender database: %w", err)
	}
	return &database, nil
}

// RecordFromExportedJournal converts an exported entry back into a canonical
// record so it can run through the synchronizer. The scope text is already
// clean; it is not re-extracted. Restores merge additively and never delete
// rows the backup does not mention.
func RecordFromExportedJournal(j *ExportedJournal) (*JournalRecord, error) {
	if j == nil {
		return nil, errors.New("journal entry is nil")
	}
	if strings.TrimSpace(j.ID) == "" {
		return nil, errMissingSourceID
	}

	return &JournalRecord{
		SourceID:   strings.TrimSpace(j.ID),
		Title:      j.Title,
		Publisher:  j.Publisher,
		Country:    j.Country,
		Coverage:   j.Coverage,
		OpenAccess: j.OpenAccess,
		Rank:       j.Rank,
		Scope:      j.Scope,
		Metrics: MetricsRecord{
			SJR:                  j.Metrics.SJR,
			SJRQuartile:          j.Metrics.SJRQuartile,
			HIndex:               j.Metrics.HIndex,
			TotalDocs2024:        j.Metrics.TotalDocs2024,
			TotalDocs3Years:      j.Metrics.TotalDocs3Years,
			CitationsPerDoc:      j.Metrics.CitationsPerDoc,
			TotalCitations3Years: j.Metrics.TotalCitations3Years,
		},
		ISSNs:      j.ISSN,
		Categories: j.Categories,
		Areas:      j.Areas,
	}, nil
}

// ScrapedJournal mirrors one entry of a scraper output file: the delimited
// export row enriched with the raw page text under "scope".
type ScrapedJournal struct {
	SourceID string  `json:"source_id"`
	Title    string  `json:"title"`
	Scope    *string `json:"scope"`
}

// ReadScrapedScopes loads a scraper output file into a source-id to raw
// scope text map, used to enrich a CSV import with scraped page text.
func ReadScrapedScopes(r io.Reader) (map[string]string, error) {
	var entries []ScrapedJournal
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode scraped scopes: %w", err)
	}

	scopes := make(map[string]string, len(entries))
	for _, entry := range entries {
		id := strings.TrimSpace(entry.SourceID)
		if id == "" || entry.Scope == nil {
			continue
		}
		scopes[id] = *entry.Scope
	}
	return scopes, nil
}
