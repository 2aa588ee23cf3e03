package services

import (
	"context"
	"errors"
	"strings"

	"journal-recommender-api/models"

	"gorm.io/gorm"
)

// JournalSyncResult captures counters for the store writes of one or more
// record synchronizations.
type JournalSyncResult struct {
	JournalsCreated       int `json:"journals_created"`
	JournalsUpdated       int `json:"journals_updated"`
	ScopesWritten         int `json:"scopes_written"`
	IssnsInserted         int `json:"issns_inserted"`
	CategoriesCreated     int `json:"categories_created"`
	CategoryLinksInserted int `json:"category_links_inserted"`
	CategoryLinksUpdated  int `json:"category_links_updated"`
	AreasCreated          int `json:"areas_created"`
	AreaLinksInserted     int `json:"area_links_inserted"`
}

// JournalSyncService reconciles canonical journal records against the
// relational store. Each record is one transaction: a failure rolls back all
// of that record's writes and leaves every other record untouched.
type JournalSyncService struct {
	db *gorm.DB
}

// NewJournalSyncService constructs a JournalSyncService.
func NewJournalSyncService(db *gorm.DB) *JournalSyncService {
	return &JournalSyncService{db: db}
}

// SyncRecord upserts one canonical record: the journal row matched by source
// id, its scope and metrics, and the ISSN/category/area associations.
// Reconciliation is additive; nothing already stored is ever deleted.
func (s *JournalSyncService) SyncRecord(ctx context.Context, record *JournalRecord, result *JournalSyncResult) (bool, error) {
	if record == nil {
		return false, errors.New("record is nil")
	}
	if strings.TrimSpace(record.SourceID) == "" {
		return false, errMissingSourceID
	}
	if result == nil {
		result = &JournalSyncResult{}
	}

	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		journalID, wasCreated, err := s.upsertJournal(tx, record, result)
		if err != nil {
			return err
		}
		created = wasCreated

		if err := s.upsertScope(tx, journalID, record.Scope, result); err != nil {
			return err
		}
		if err := s.upsertMetrics(tx, journalID, &record.Metrics); err != nil {
			return err
		}
		if err := s.insertMissingISSNs(tx, journalID, record.ISSNs, result); err != nil {
			return err
		}
		if err := s.upsertCategoryLinks(tx, journalID, record.Categories, result); err != nil {
			return err
		}
		return s.upsertAreaLinks(tx, journalID, record.Areas, result)
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

// SyncScope stores a freshly extracted scope for one journal without touching
// the descriptive fields, metrics or associations an earlier full import may
// have written. The journal row is created when the source id is new.
func (s *JournalSyncService) SyncScope(ctx context.Context, sourceID, title, scope string, result *JournalSyncResult) (bool, error) {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return false, errMissingSourceID
	}
	if result == nil {
		result = &JournalSyncResult{}
	}

	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.syncScope(tx, sourceID, title, scope, result)
		return err
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (s *JournalSyncService) syncScope(tx *gorm.DB, sourceID, title, scope string, result *JournalSyncResult) (bool, error) {
	journalID, created, err := s.resolveScopeJournal(tx, sourceID, title, result)
	if err != nil {
		return false, err
	}
	if err := s.upsertScope(tx, journalID, scope, result); err != nil {
		return false, err
	}
	return created, nil
}

// resolveScopeJournal resolves the journal row for a scrape. An existing row
// keeps every stored field; only the title follows the export listing, since
// a scrape carries no other journal data.
func (s *JournalSyncService) resolveScopeJournal(tx *gorm.DB, sourceID, title string, result *JournalSyncResult) (uint, bool, error) {
	var existing models.Journal
	if err := tx.Where("source_id = ?", sourceID).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, err
		}
		model := &models.Journal{SourceID: sourceID, Title: title}
		if err := tx.Create(model).Error; err != nil {
			return 0, false, err
		}
		result.JournalsCreated++
		return model.ID, true, nil
	}

	if title != "" && title != existing.Title {
		if err := tx.Model(&existing).Update("title", title).Error; err != nil {
			return 0, false, err
		}
		result.JournalsUpdated++
	}
	return existing.ID, false, nil
}

// upsertJournal matches on source_id, inserting when absent and updating the
// mutable fields otherwise.
func (s *JournalSyncService) upsertJournal(tx *gorm.DB, record *JournalRecord, result *JournalSyncResult) (uint, bool, error) {
	model := &models.Journal{
		SourceID:    record.SourceID,
		Title:       record.Title,
		Publisher:   record.Publisher,
		Country:     record.Country,
		Coverage:    record.Coverage,
		OpenAccess:  record.OpenAccess,
		ScimagoRank: record.Rank,
	}

	var existing models.Journal
	if err := tx.Where("source_id = ?", record.SourceID).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, err
		}
		if err := tx.Create(model).Error; err != nil {
			return 0, false, err
		}
		result.JournalsCreated++
		return model.ID, true, nil
	}

	model.ID = existing.ID
	if err := tx.Save(model).Error; err != nil {
		return 0, false, err
	}
	result.JournalsUpdated++
	return existing.ID, false, nil
}

// upsertScope replaces the scope text wholesale. An empty scope means the
// extraction missed; the previously stored text is left alone.
func (s *JournalSyncService) upsertScope(tx *gorm.DB, journalID uint, scope string, result *JournalSyncResult) error {
	if strings.TrimSpace(scope) == "" {
		return nil
	}

	model := &models.JournalScope{JournalID: journalID, ScopeText: scope}

	var existing models.JournalScope
	if err := tx.Where("journal_id = ?", journalID).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		result.ScopesWritten++
		return nil
	}

	model.ID = existing.ID
	if err := tx.Save(model).Error; err != nil {
		return err
	}
	result.ScopesWritten++
	return nil
}

// upsertMetrics merges the incoming metrics into the stored row with
// fill-forward semantics and writes the result back.
func (s *JournalSyncService) upsertMetrics(tx *gorm.DB, journalID uint, incoming *MetricsRecord) error {
	var existing models.JournalMetrics
	if err := tx.Where("journal_id = ?", journalID).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		model := mergeMetrics(&models.JournalMetrics{JournalID: journalID}, incoming)
		return tx.Create(model).Error
	}

	model := mergeMetrics(&existing, incoming)
	model.ID = existing.ID
	return tx.Save(model).Error
}

// mergeMetrics applies fill-forward semantics: an incoming non-nil value
// replaces the stored one, an incoming nil keeps whatever was already known.
// Partial scrapes must never blank out earlier complete data.
func mergeMetrics(existing *models.JournalMetrics, incoming *MetricsRecord) *models.JournalMetrics {
	merged := &models.JournalMetrics{
		ID:                   existing.ID,
		JournalID:            existing.JournalID,
		SJR:                  existing.SJR,
		SJRQuartile:          existing.SJRQuartile,
		HIndex:               existing.HIndex,
		TotalDocs2024:        existing.TotalDocs2024,
		TotalDocs3Years:      existing.TotalDocs3Years,
		CitationsPerDoc:      existing.CitationsPerDoc,
		TotalCitations3Years: existing.TotalCitations3Years,
	}
	if incoming == nil {
		return merged
	}
	if incoming.SJR != nil {
		merged.SJR = incoming.SJR
	}
	if incoming.SJRQuartile != nil {
		merged.SJRQuartile = incoming.SJRQuartile
	}
	if incoming.HIndex != nil {
		merged.HIndex = incoming.HIndex
	}
	if incoming.TotalDocs2024 != nil {
		merged.TotalDocs2024 = incoming.TotalDocs2024
	}
	if incoming.TotalDocs3Years != nil {
		merged.TotalDocs3Years = incoming.TotalDocs3Years
	}
	if incoming.CitationsPerDoc != nil {
		merged.CitationsPerDoc = incoming.CitationsPerDoc
	}
	if incoming.TotalCitations3Years != nil {
		merged.TotalCitations3Years = incoming.TotalCitations3Years
	}
	return merged
}

// insertMissingISSNs is additive-only: ISSNs absent from the incoming record
// are kept, since later partial scrapes must not destroy earlier data.
func (s *JournalSyncService) insertMissingISSNs(tx *gorm.DB, journalID uint, issns []string, result *JournalSyncResult) error {
	for _, issn := range issns {
		issn = strings.TrimSpace(issn)
		if issn == "" {
			continue
		}

		var existing models.JournalISSN
		err := tx.Where("journal_id = ? AND issn = ?", journalID, issn).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&models.JournalISSN{JournalID: journalID, ISSN: issn}).Error; err != nil {
			return err
		}
		result.IssnsInserted++
	}
	return nil
}

// upsertCategoryLinks resolves each category in the shared dictionary before
// touching the join row, then inserts or updates the link's quartile.
func (s *JournalSyncService) upsertCategoryLinks(tx *gorm.DB, journalID uint, entries []CategoryEntry, result *JournalSyncResult) error {
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}

		categoryID, err := s.resolveCategory(tx, name, result)
		if err != nil {
			return err
		}

		link := &models.JournalCategory{
			JournalID:  journalID,
			CategoryID: categoryID,
			Quartile:   entry.Quartile,
		}

		var existing models.JournalCategory
		if err := tx.Where("journal_id = ? AND category_id = ?", journalID, categoryID).
			First(&existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
			result.CategoryLinksInserted++
			continue
		}

		link.ID = existing.ID
		if err := tx.Save(link).Error; err != nil {
			return err
		}
		result.CategoryLinksUpdated++
	}
	return nil
}

func (s *JournalSyncService) resolveCategory(tx *gorm.DB, name string, result *JournalSyncResult) (uint, error) {
	var existing models.Category
	if err := tx.Where("name = ?", name).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		model := &models.Category{Name: name}
		if err := tx.Create(model).Error; err != nil {
			return 0, err
		}
		result.CategoriesCreated++
		return model.ID, nil
	}
	return existing.ID, nil
}

// upsertAreaLinks resolves each subject area in the shared dictionary and
// inserts the link if absent. Area links carry no attributes to update.
func (s *JournalSyncService) upsertAreaLinks(tx *gorm.DB, journalID uint, areas []string, result *JournalSyncResult) error {
	for _, name := range areas {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		areaID, err := s.resolveArea(tx, name, result)
		if err != nil {
			return err
		}

		var existing models.JournalArea
		err = tx.Where("journal_id = ? AND area_id = ?", journalID, areaID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&models.JournalArea{JournalID: journalID, AreaID: areaID}).Error; err != nil {
			return err
		}
		result.AreaLinksInserted++
	}
	return nil
}

func (s *JournalSyncService) resolveArea(tx *gorm.DB, name string, result *JournalSyncResult) (uint, error) {
	var existing models.SubjectArea
	if err := tx.Where("name = ?", name).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		model := &models.SubjectArea{Name: name}
		if err := tx.Create(model).Error; err != nil {
			return 0, err
		}
		result.AreasCreated++
		return model.ID, nil
	}
	return existing.ID, nil
}
