package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// The SCImago export is semicolon-delimited with a fixed header. Header names
// must be preserved verbatim; cells are looked up by name so column order in
// the file does not matter.

// ReadScimagoCSV parses a SCImago journal export into raw rows. Cell values
// stay verbatim; parsing into typed fields happens in the normalizer.
func ReadScimagoCSV(r io.Reader) ([]*RawJournalRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv file is empty")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index["Sourceid"]; !ok {
		return nil, errors.New("csv header is missing the Sourceid column")
	}

	cell := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []*RawJournalRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		rows = append(rows, &RawJournalRow{
			Rank:                 cell(record, "Rank"),
			SourceID:             cell(record, "Sourceid"),
			Title:                cell(record, "Title"),
			Type:                 cell(record, "Type"),
			ISSN:                 cell(record, "Issn"),
			Publisher:            cell(record, "Publisher"),
			OpenAccess:           cell(record, "Open Access"),
			SJR:                  cell(record, "SJR"),
			SJRQuartile:          cell(record, "SJR Best Quartile"),
			HIndex:               cell(record, "H index"),
			TotalDocs2024:        cell(record, "Total Docs. (2024)"),
			TotalDocs3Years:      cell(record, "Total Docs. (3years)"),
			TotalRefs:            cell(record, "Total Refs."),
			TotalCitations3Years: cell(record, "Total Citations (3years)"),
			CitableDocs3Years:    cell(record, "Citable Docs. (3years)"),
			CitationsPerDoc:      cell(record, "Citations / Doc. (2years)"),
			RefsPerDoc:           cell(record, "Ref. / Doc."),
			FemalePercent:        cell(record, "%Female"),
			Country:              cell(record, "Country"),
			Region:               cell(record, "Region"),
			Coverage:             cell(record, "Coverage"),
			Categories:           cell(record, "Categories"),
			Areas:                cell(record, "Areas"),
		})
	}

	return rows, nil
}
