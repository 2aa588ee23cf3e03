package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the pipeline writes to.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Journal{},
		&JournalScope{},
		&JournalMetrics{},
		&JournalISSN{},
		&Category{},
		&SubjectArea{},
		&JournalCategory{},
		&JournalArea{},
		&JournalImportRun{},
	)
}
