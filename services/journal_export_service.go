package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"journal-recommender-api/models"

	"gorm.io/gorm"
)

// Journals with no rank sort last in the recommender database.
const missingRankSentinel = 99999

// Multi-valued CSV cells (ISSNs, areas, categories) are joined with "; ".
// Round-tripping through this separator is lossy if a name contains it.
const csvJoinSeparator = "; "

// ExportMetadata is the envelope of the recommender JSON database.
type ExportMetadata struct {
	Source        string `json:"source"`
	Publisher     string `json:"publisher"`
	TotalJournals int    `json:"totalJournals"`
	LastUpdated   string `json:"lastUpdated"`
	Version       string `json:"version"`
}

// ExportedMetrics is the metrics block of one exported journal. Nulls are
// explicit so the recommender can tell "unknown" from zero.
type ExportedMetrics struct {
	SJR                  *float64 `json:"sjr"`
	SJRQuartile          *string  `json:"sjrQuartile"`
	HIndex               *int     `json:"hIndex"`
	TotalDocs2024        *int     `json:"totalDocs2024"`
	TotalDocs3Years      *int     `json:"totalDocs3Years"`
	CitationsPerDoc      *float64 `json:"citationsPerDoc"`
	TotalCitations3Years *int     `json:"totalCitations3Years"`
}

// ExportedJournal is one canonical record of the recommender database. The
// id field carries the external source id, not the surrogate key.
type ExportedJournal struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	ISSN       []string        `json:"issn"`
	Publisher  *string         `json:"publisher"`
	OpenAccess bool            `json:"openAccess"`
	Metrics    ExportedMetrics `json:"metrics"`
	Scope      string          `json:"scope"`
	Categories []CategoryEntry `json:"categories"`
	Areas      []string        `json:"areas"`
	Country    *string         `json:"country"`
	Coverage   *string         `json:"coverage"`
	Rank       *int            `json:"rank"`
}

// RecommenderDatabase is the full JSON document handed to the recommender.
type RecommenderDatabase struct {
	Metadata ExportMetadata    `json:"metadata"`
	Journals []ExportedJournal `json:"journals"`
}

// JournalExportService builds read-only projections of the relational data.
type JournalExportService struct {
	db *gorm.DB
}

// NewJournalExportService constructs a JournalExportService.
func NewJournalExportService(db *gorm.DB) *JournalExportService {
	return &JournalExportService{db: db}
}

// BuildDatabase loads every journal with its relations and assembles the
// recommender database, sorted by rank ascending with missing ranks last.
func (s *JournalExportService) BuildDatabase(ctx context.Context, source, publisher, version string) (*RecommenderDatabase, error) {
	var journals []models.Journal
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&journals).Error; err != nil {
		return nil, err
	}

	exported := make([]ExportedJournal, 0, len(journals))
	for i := range journals {
		entry, err := s.exportJournal(ctx, &journals[i])
		if err != nil {
			return nil, err
		}
		exported = append(exported, *entry)
	}

	sortJournalsByRank(exported)

	return &RecommenderDatabase{
		Metadata: ExportMetadata{
			Source:        source,
			Publisher:     publisher,
			TotalJournals: len(exported),
			LastUpdated:   time.Now().UTC().Format(time.RFC3339),
			Version:       version,
		},
		Journals: exported,
	}, nil
}

// WriteDatabaseJSON writes the recommender database as indented JSON.
func (s *JournalExportService) WriteDatabaseJSON(ctx context.Context, w io.Writer, source, publisher, version string) error {
	database, err := s.BuildDatabase(ctx, source, publisher, version)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(database)
}

func (s *JournalExportService) exportJournal(ctx context.Context, journal *models.Journal) (*ExportedJournal, error) {
	entry := &ExportedJournal{
		ID:         journal.SourceID,
		Title:      journal.Title,
		ISSN:       []string{},
		Publisher:  journal.Publisher,
		OpenAccess: journal.OpenAccess,
		Categories: []CategoryEntry{},
		Areas:      []string{},
		Country:    journal.Country,
		Coverage:   journal.Coverage,
		Rank:       journal.ScimagoRank,
	}

	var scope models.JournalScope
	if err := s.db.WithContext(ctx).Where("journal_id = ?", journal.ID).First(&scope).Error; err == nil {
		entry.Scope = scope.ScopeText
	} else if !isNotFound(err) {
		return nil, err
	}

	var metrics models.JournalMetrics
	if err := s.db.WithContext(ctx).Where("journal_id = ?", journal.ID).First(&metrics).Error; err == nil {
		entry.Metrics = ExportedMetrics{
			SJR:                  metrics.SJR,
			SJRQuartile:          metrics.SJRQuartile,
			HIndex:               metrics.HIndex,
			TotalDocs2024:        metrics.TotalDocs2024,
			TotalDocs3Years:      metrics.TotalDocs3Years,
			CitationsPerDoc:      metrics.CitationsPerDoc,
			TotalCitations3Years: metrics.TotalCitations3Years,
		}
	} else if !isNotFound(err) {
		return nil, err
	}

	var issns []models.JournalISSN
	if err := s.db.WithContext(ctx).Where("journal_id = ?", journal.ID).Order("id ASC").Find(&issns).Error; err != nil {
		return nil, err
	}
	for _, issn := range issns {
		entry.ISSN = append(entry.ISSN, issn.ISSN)
	}

	type categoryRow struct {
		Name     string
		Quartile *string
	}
	var categories []categoryRow
	if err := s.db.WithContext(ctx).Table("journal_categories").
		Select("categories.name, journal_categories.quartile").
		Joins("JOIN categories ON categories.id = journal_categories.category_id").
		Where("journal_categories.journal_id = ?", journal.ID).
		Order("categories.name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	for _, cat := range categories {
		entry.Categories = append(entry.Categories, CategoryEntry{Name: cat.Name, Quartile: cat.Quartile})
	}

	var areas []string
	if err := s.db.WithContext(ctx).Table("journal_areas").
		Select("subject_areas.name").
		Joins("JOIN subject_areas ON subject_areas.id = journal_areas.area_id").
		Where("journal_areas.journal_id = ?", journal.ID).
		Order("subject_areas.name ASC").
		Pluck("subject_areas.name", &areas).Error; err != nil {
		return nil, err
	}
	entry.Areas = append(entry.Areas, areas...)

	return entry, nil
}

func sortJournalsByRank(journals []ExportedJournal) {
	sort.SliceStable(journals, func(i, j int) bool {
		return rankOrSentinel(journals[i].Rank) < rankOrSentinel(journals[j].Rank)
	})
}

func rankOrSentinel(rank *int) int {
	if rank == nil {
		return missingRankSentinel
	}
	return *rank
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// WriteJournalsCSV writes the flattened per-journal projection: base fields,
// scope, metrics, then the multi-valued fields joined with "; ".
func (s *JournalExportService) WriteJournalsCSV(ctx context.Context, w io.Writer) error {
	database, err := s.BuildDatabase(ctx, "", "", "")
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{
		"source_id", "title", "publisher", "country", "open_access",
		"coverage", "scimago_rank", "scope_text", "sjr", "sjr_quartile",
		"h_index", "total_docs_2024", "total_docs_3years", "citations_per_doc",
		"total_citations_3years", "issns", "areas", "categories",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, j := range database.Journals {
		categories := make([]string, 0, len(j.Categories))
		for _, cat := range j.Categories {
			quartile := "N/A"
			if cat.Quartile != nil {
				quartile = *cat.Quartile
			}
			categories = append(categories, fmt.Sprintf("%s (%s)", cat.Name, quartile))
		}

		record := []string{
			j.ID,
			j.Title,
			stringOrEmpty(j.Publisher),
			stringOrEmpty(j.Country),
			strconv.FormatBool(j.OpenAccess),
			stringOrEmpty(j.Coverage),
			intCell(j.Rank),
			j.Scope,
			floatCell(j.Metrics.SJR),
			stringOrEmpty(j.Metrics.SJRQuartile),
			intCell(j.Metrics.HIndex),
			intCell(j.Metrics.TotalDocs2024),
			intCell(j.Metrics.TotalDocs3Years),
			floatCell(j.Metrics.CitationsPerDoc),
			intCell(j.Metrics.TotalCitations3Years),
			strings.Join(j.ISSN, csvJoinSeparator),
			strings.Join(j.Areas, csvJoinSeparator),
			strings.Join(categories, csvJoinSeparator),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJournalsBasicCSV writes the slimmer per-journal projection: identity,
// headline metrics and descriptive fields, ordered by publisher then SJR
// descending with unknown values last.
func (s *JournalExportService) WriteJournalsBasicCSV(ctx context.Context, w io.Writer) error {
	database, err := s.BuildDatabase(ctx, "", "", "")
	if err != nil {
		return err
	}

	journals := journalsForBasicExport(database.Journals)

	writer := csv.NewWriter(w)
	header := []string{
		"source_id", "title", "publisher", "sjr_quartile", "sjr",
		"h_index", "citations_per_doc", "open_access", "country", "coverage",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, j := range journals {
		record := []string{
			j.ID,
			j.Title,
			stringOrEmpty(j.Publisher),
			stringOrEmpty(j.Metrics.SJRQuartile),
			floatCell(j.Metrics.SJR),
			intCell(j.Metrics.HIndex),
			floatCell(j.Metrics.CitationsPerDoc),
			strconv.FormatBool(j.OpenAccess),
			stringOrEmpty(j.Country),
			stringOrEmpty(j.Coverage),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteScopesCSV writes one row per journal with a non-empty scope, ordered
// by publisher then title, for downstream text analysis.
func (s *JournalExportService) WriteScopesCSV(ctx context.Context, w io.Writer) error {
	database, err := s.BuildDatabase(ctx, "", "", "")
	if err != nil {
		return err
	}

	journals := journalsForScopeExport(database.Journals)

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"source_id", "title", "publisher", "scope_text"}); err != nil {
		return err
	}
	for _, j := range journals {
		record := []string{j.ID, j.Title, stringOrEmpty(j.Publisher), j.Scope}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func journalsForBasicExport(journals []ExportedJournal) []ExportedJournal {
	sorted := append([]ExportedJournal(nil), journals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := stringOrEmpty(sorted[i].Publisher), stringOrEmpty(sorted[j].Publisher)
		if pi != pj {
			// Journals without a publisher sort last.
			if pi == "" {
				return false
			}
			if pj == "" {
				return true
			}
			return pi < pj
		}
		return sjrOrMin(sorted[i].Metrics.SJR) > sjrOrMin(sorted[j].Metrics.SJR)
	})
	return sorted
}

func journalsForScopeExport(journals []ExportedJournal) []ExportedJournal {
	var withScope []ExportedJournal
	for _, j := range journals {
		if strings.TrimSpace(j.Scope) == "" {
			continue
		}
		withScope = append(withScope, j)
	}
	sort.SliceStable(withScope, func(i, j int) bool {
		pi, pj := stringOrEmpty(withScope[i].Publisher), stringOrEmpty(withScope[j].Publisher)
		if pi != pj {
			return pi < pj
		}
		return withScope[i].Title < withScope[j].Title
	})
	return withScope
}

func sjrOrMin(sjr *float64) float64 {
	if sjr == nil {
		return -1
	}
	return *sjr
}

// WriteCategoriesCSV writes the shared category dictionary ordered by name.
func (s *JournalExportService) WriteCategoriesCSV(ctx context.Context, w io.Writer) error {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "name"}); err != nil {
		return err
	}
	for _, cat := range categories {
		if err := writer.Write([]string{strconv.FormatUint(uint64(cat.ID), 10), cat.Name}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSubjectAreasCSV writes the shared subject area dictionary ordered by name.
func (s *JournalExportService) WriteSubjectAreasCSV(ctx context.Context, w io.Writer) error {
	var areas []models.SubjectArea
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&areas).Error; err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "name"}); err != nil {
		return err
	}
	for _, area := range areas {
		if err := writer.Write([]string{strconv.FormatUint(uint64(area.ID), 10), area.Name}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func stringOrEmpty(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}

func intCell(val *int) string {
	if val == nil {
		return ""
	}
	return strconv.Itoa(*val)
}

func floatCell(val *float64) string {
	if val == nil {
		return ""
	}
	return strconv.FormatFloat(*val, 'f', -1, 64)
}
