package services

import (
	"errors"
	"strings"
)

// RawJournalRow mirrors one row of the SCImago delimited export, all cells
// verbatim, plus the raw scraped page text when a scrape pass has run.
// Column presence and naming are fixed by the upstream export format.
type RawJournalRow struct {
	Rank                 string
	SourceID             string
	Title                string
	Type                 string
	ISSN                 string
	Publisher            string
	OpenAccess           string
	SJR                  string
	SJRQuartile          string
	HIndex               string
	TotalDocs2024        string
	TotalDocs3Years      string
	TotalRefs            string
	TotalCitations3Years string
	CitableDocs3Years    string
	CitationsPerDoc      string
	RefsPerDoc           string
	FemalePercent        string
	Country              string
	Region               string
	Coverage             string
	Categories           string
	Areas                string

	RawScope string
}

// MetricsRecord carries the parsed citation metrics of one record. Nil means
// the source did not provide the value; the synchronizer never lets a nil
// overwrite a previously stored value.
type MetricsRecord struct {
	SJR                  *float64
	SJRQuartile          *string
	HIndex               *int
	TotalDocs2024        *int
	TotalDocs3Years      *int
	CitationsPerDoc      *float64
	TotalCitations3Years *int
}

// JournalRecord is the canonical aggregate handed to the synchronizer:
// journal fields, extracted scope, parsed metrics and the association sets.
type JournalRecord struct {
	SourceID   string
	Title      string
	Publisher  *string
	Country    *string
	Coverage   *string
	OpenAccess bool
	Rank       *int

	Scope      string
	Metrics    MetricsRecord
	ISSNs      []string
	Categories []CategoryEntry
	Areas      []string
}

var errMissingSourceID = errors.New("row has no source id")

// NormalizeJournalRow assembles the canonical aggregate from a raw export
// row, running the field parsers and the scope extractor.
func NormalizeJournalRow(row *RawJournalRow) (*JournalRecord, error) {
	if row == nil {
		return nil, errors.New("row is nil")
	}
	sourceID := strings.TrimSpace(row.SourceID)
	if sourceID == "" {
		return nil, errMissingSourceID
	}

	record := &JournalRecord{
		SourceID:   sourceID,
		Title:      strings.Trim(strings.TrimSpace(row.Title), `"`),
		Publisher:  optionalString(row.Publisher),
		Country:    optionalString(row.Country),
		Coverage:   optionalString(row.Coverage),
		OpenAccess: strings.EqualFold(strings.TrimSpace(row.OpenAccess), "Yes"),
		Rank:       parseIntPointer(row.Rank),
		Scope:      ExtractScopeDescription(row.RawScope),
		Metrics: MetricsRecord{
			SJR:                  parseFloatPointer(row.SJR),
			SJRQuartile:          normalizeQuartile(row.SJRQuartile),
			HIndex:               parseIntPointer(row.HIndex),
			TotalDocs2024:        parseIntPointer(row.TotalDocs2024),
			TotalDocs3Years:      parseIntPointer(row.TotalDocs3Years),
			CitationsPerDoc:      parseFloatPointer(row.CitationsPerDoc),
			TotalCitations3Years: parseIntPointer(row.TotalCitations3Years),
		},
		ISSNs:      parseISSNList(strings.Trim(row.ISSN, `"`)),
		Categories: parseCategoryList(strings.Trim(row.Categories, `"`)),
		Areas:      parseAreaList(strings.Trim(row.Areas, `"`)),
	}

	return record, nil
}
