package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	JournalImportRunStatusRunning = "running"
	JournalImportRunStatusSuccess = "success"
	JournalImportRunStatusFailed  = "failed"
)

// JournalImportRun records one batch synchronization run over a set of
// journal records, whatever the source (CSV import, JSON restore, scrape).
type JournalImportRun struct {
	ID uint `json:"id" gorm:"primaryKey;autoIncrement"`

	TriggerSource string     `json:"trigger_source" gorm:"type:varchar(64);not null"`
	Status        string     `json:"status" gorm:"type:varchar(16);not null;default:'running'"`
	ErrorMessage  *string    `json:"error_message" gorm:"type:text"`
	StartedAt     time.Time  `json:"started_at" gorm:"column:started_at;autoCreateTime"`
	FinishedAt    *time.Time `json:"finished_at" gorm:"column:finished_at"`

	RecordsProcessed uint `json:"records_processed" gorm:"column:records_processed;not null;default:0"`
	RecordsCreated   uint `json:"records_created" gorm:"column:records_created;not null;default:0"`
	RecordsUpdated   uint `json:"records_updated" gorm:"column:records_updated;not null;default:0"`
	RecordsFailed    uint `json:"records_failed" gorm:"column:records_failed;not null;default:0"`

	IssnsInserted         uint `json:"issns_inserted" gorm:"column:issns_inserted;not null;default:0"`
	CategoryLinksInserted uint `json:"category_links_inserted" gorm:"column:category_links_inserted;not null;default:0"`
	CategoryLinksUpdated  uint `json:"category_links_updated" gorm:"column:category_links_updated;not null;default:0"`
	AreaLinksInserted     uint `json:"area_links_inserted" gorm:"column:area_links_inserted;not null;default:0"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"column:deleted_at;index"`
}

func (JournalImportRun) TableName() string { return "journal_import_runs" }
