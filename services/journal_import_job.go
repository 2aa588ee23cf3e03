package services

import (
	"context"
	"log"
	"time"

	"journal-recommender-api/models"

	"gorm.io/gorm"
)

// RecordState tracks a record through the pipeline. A record either reaches
// Committed or stops at Failed; there are no retries within a run.
type RecordState string

const (
	RecordStatePending    RecordState = "pending"
	RecordStateParsed     RecordState = "parsed"
	RecordStateNormalized RecordState = "normalized"
	RecordStateCommitted  RecordState = "committed"
	RecordStateFailed     RecordState = "failed"
)

// FailedRecord identifies one record that was skipped, so operators can
// re-run just the failures.
type FailedRecord struct {
	SourceID string `json:"source_id"`
	Title    string `json:"title"`
	Reason   string `json:"reason"`
}

// JournalImportSummary reports one batch run.
type JournalImportSummary struct {
	RecordsProcessed int               `json:"records_processed"`
	RecordsCreated   int               `json:"records_created"`
	RecordsUpdated   int               `json:"records_updated"`
	RecordsFailed    int               `json:"records_failed"`
	Sync             JournalSyncResult `json:"sync"`
	Failed           []FailedRecord    `json:"failed,omitempty"`
}

// JournalImportJobService runs a batch of records through normalization and
// synchronization, sequentially and in input order, recording the run in
// journal_import_runs.
type JournalImportJobService struct {
	db   *gorm.DB
	sync *JournalSyncService
}

// NewJournalImportJobService constructs a JournalImportJobService.
func NewJournalImportJobService(db *gorm.DB) *JournalImportJobService {
	return &JournalImportJobService{
		db:   db,
		sync: NewJournalSyncService(db),
	}
}

// RunRows normalizes raw export rows and synchronizes the results. A row
// that fails normalization is reported and skipped like any other failure.
func (s *JournalImportJobService) RunRows(ctx context.Context, rows []*RawJournalRow, trigger string) (*JournalImportSummary, error) {
	records := make([]*JournalRecord, 0, len(rows))
	var prefailed []FailedRecord

	for _, row := range rows {
		record, err := NormalizeJournalRow(row)
		if err != nil {
			title := ""
			if row != nil {
				title = row.Title
			}
			prefailed = append(prefailed, FailedRecord{Title: title, Reason: err.Error()})
			continue
		}
		records = append(records, record)
	}

	return s.run(ctx, records, prefailed, trigger)
}

// RunRecords synchronizes canonical records one at a time. Per-record store
// failures roll back that record and the run continues; a context
// cancellation between records aborts the run with no half-committed record.
func (s *JournalImportJobService) RunRecords(ctx context.Context, records []*JournalRecord, trigger string) (*JournalImportSummary, error) {
	return s.run(ctx, records, nil, trigger)
}

// run seeds the summary with failures collected before the store was touched,
// so the persisted run counters include them.
func (s *JournalImportJobService) run(ctx context.Context, records []*JournalRecord, prefailed []FailedRecord, trigger string) (*JournalImportSummary, error) {
	summary := &JournalImportSummary{
		RecordsFailed: len(prefailed),
		Failed:        append([]FailedRecord(nil), prefailed...),
	}

	run := &models.JournalImportRun{
		TriggerSource: trigger,
		Status:        models.JournalImportRunStatusRunning,
		StartedAt:     time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}

	var runErr error
	defer func() {
		status := models.JournalImportRunStatusSuccess
		var errMsg *string
		if runErr != nil {
			status = models.JournalImportRunStatusFailed
			msg := runErr.Error()
			errMsg = &msg
		}
		finished := time.Now()

		updates := map[string]interface{}{
			"status":                  status,
			"finished_at":             finished,
			"error_message":           errMsg,
			"records_processed":       summary.RecordsProcessed,
			"records_created":         summary.RecordsCreated,
			"records_updated":         summary.RecordsUpdated,
			"records_failed":          summary.RecordsFailed,
			"issns_inserted":          summary.Sync.IssnsInserted,
			"category_links_inserted": summary.Sync.CategoryLinksInserted,
			"category_links_updated":  summary.Sync.CategoryLinksUpdated,
			"area_links_inserted":     summary.Sync.AreaLinksInserted,
		}
		if err := s.db.Model(run).Updates(updates).Error; err != nil {
			log.Printf("failed to finalize journal import run %d: %v", run.ID, err)
		}
	}()

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			runErr = err
			return nil, err
		}

		created, err := s.sync.SyncRecord(ctx, record, &summary.Sync)
		if err != nil {
			summary.RecordsFailed++
			summary.Failed = append(summary.Failed, FailedRecord{
				SourceID: record.SourceID,
				Title:    record.Title,
				Reason:   err.Error(),
			})
			log.Printf("journal import: failed to sync %q (source %s): %v", record.Title, record.SourceID, err)
			continue
		}

		summary.RecordsProcessed++
		if created {
			summary.RecordsCreated++
		} else {
			summary.RecordsUpdated++
		}
	}

	return summary, nil
}
