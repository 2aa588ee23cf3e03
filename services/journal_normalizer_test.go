package services

import (
	"errors"
	"testing"
)

func TestNormalizeJournalRow(t *testing.T) {
	row := &RawJournalRow{
		Rank:                 "1",
		SourceID:             " 28773 ",
		Title:                `"Ca-A Cancer Journal for Clinicians"`,
		ISSN:                 "15424863, 00079235",
		Publisher:            "Wiley-Blackwell",
		OpenAccess:           "No",
		SJR:                  "86,091",
		SJRQuartile:          "Q1",
		HIndex:               "223",
		TotalDocs2024:        "49",
		TotalDocs3Years:      "120",
		CitationsPerDoc:      "168,82",
		TotalCitations3Years: "20088",
		Country:              "United States",
		Coverage:             "1950-2025",
		Categories:           "Hematology (Q1); Oncology (Q1)",
		Areas:                "Medicine; Health Professions",
	}

	record, err := NormalizeJournalRow(row)
	if err != nil {
		t.Fatalf("NormalizeJournalRow failed: %v", err)
	}

	if record.SourceID != "28773" {
		t.Errorf("unexpected source id %q", record.SourceID)
	}
	if record.Title != "Ca-A Cancer Journal for Clinicians" {
		t.Errorf("unexpected title %q", record.Title)
	}
	if record.OpenAccess {
		t.Error("expected closed access")
	}
	if record.Rank == nil || *record.Rank != 1 {
		t.Errorf("unexpected rank %v", record.Rank)
	}
	if record.Publisher == nil || *record.Publisher != "Wiley-Blackwell" {
		t.Errorf("unexpected publisher %v", record.Publisher)
	}
	if record.Metrics.SJR == nil || *record.Metrics.SJR != 86.091 {
		t.Errorf("unexpected sjr %v", record.Metrics.SJR)
	}
	if record.Metrics.SJRQuartile == nil || *record.Metrics.SJRQuartile != "Q1" {
		t.Errorf("unexpected quartile %v", record.Metrics.SJRQuartile)
	}
	if record.Metrics.HIndex == nil || *record.Metrics.HIndex != 223 {
		t.Errorf("unexpected h index %v", record.Metrics.HIndex)
	}
	if record.Metrics.CitationsPerDoc == nil || *record.Metrics.CitationsPerDoc != 168.82 {
		t.Errorf("unexpected citations per doc %v", record.Metrics.CitationsPerDoc)
	}
	if len(record.ISSNs) != 2 || record.ISSNs[0] != "15424863" {
		t.Errorf("unexpected issns %v", record.ISSNs)
	}
	if len(record.Categories) != 2 || record.Categories[1].Name != "Oncology" {
		t.Errorf("unexpected categories %+v", record.Categories)
	}
	if len(record.Areas) != 2 || record.Areas[1] != "Health Professions" {
		t.Errorf("unexpected areas %v", record.Areas)
	}
}

func TestNormalizeJournalRowMissingValues(t *testing.T) {
	record, err := NormalizeJournalRow(&RawJournalRow{SourceID: "12345", Title: "Sparse Journal"})
	if err != nil {
		t.Fatalf("NormalizeJournalRow failed: %v", err)
	}
	if record.Metrics.SJR != nil || record.Metrics.HIndex != nil || record.Metrics.SJRQuartile != nil {
		t.Errorf("empty cells must normalize to nil metrics: %+v", record.Metrics)
	}
	if record.Rank != nil || record.Publisher != nil || record.Country != nil {
		t.Errorf("empty cells must normalize to nil fields: %+v", record)
	}
	if record.ISSNs != nil || record.Categories != nil || record.Areas != nil {
		t.Errorf("empty lists must stay nil: %+v", record)
	}
	if record.Scope != "" {
		t.Errorf("no raw page text should mean no scope, got %q", record.Scope)
	}
}

func TestNormalizeJournalRowMissingSourceID(t *testing.T) {
	if _, err := NormalizeJournalRow(&RawJournalRow{Title: "Orphan"}); !errors.Is(err, errMissingSourceID) {
		t.Fatalf("expected errMissingSourceID, got %v", err)
	}
	if _, err := NormalizeJournalRow(nil); err == nil {
		t.Fatal("expected error for nil row")
	}
}
