package models

// Journal is the root bibliometric record for a single journal, keyed by the
// externally assigned SCImago source id. Records that arrive again with the
// same source id update the existing row, never duplicate it.
type Journal struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	SourceID    string  `gorm:"column:source_id;uniqueIndex" json:"source_id"`
	Title       string  `gorm:"column:title" json:"title"`
	Publisher   *string `gorm:"column:publisher" json:"publisher,omitempty"`
	Country     *string `gorm:"column:country" json:"country,omitempty"`
	Coverage    *string `gorm:"column:coverage" json:"coverage,omitempty"`
	OpenAccess  bool    `gorm:"column:open_access" json:"open_access"`
	ScimagoRank *int    `gorm:"column:scimago_rank" json:"scimago_rank,omitempty"`
}

// TableName overrides the table name used by Journal to `journals`.
func (Journal) TableName() string {
	return "journals"
}

// JournalScope holds the cleaned aims-and-scope narrative, at most one row
// per journal. The text is replaced wholesale on each successful
// re-extraction.
type JournalScope struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	JournalID uint   `gorm:"column:journal_id;uniqueIndex" json:"journal_id"`
	ScopeText string `gorm:"column:scope_text;type:text" json:"scope_text"`
}

// TableName overrides the table name used by JournalScope to `journal_scopes`.
func (JournalScope) TableName() string {
	return "journal_scopes"
}

// JournalMetrics holds the citation metrics for a journal, at most one row
// per journal. Every column is either a valid value or NULL, never an
// unparsed string.
type JournalMetrics struct {
	ID                   uint     `gorm:"primaryKey;column:id" json:"id"`
	JournalID            uint     `gorm:"column:journal_id;uniqueIndex" json:"journal_id"`
	SJR                  *float64 `gorm:"column:sjr" json:"sjr,omitempty"`
	SJRQuartile          *string  `gorm:"column:sjr_quartile" json:"sjr_quartile,omitempty"`
	HIndex               *int     `gorm:"column:h_index" json:"h_index,omitempty"`
	TotalDocs2024        *int     `gorm:"column:total_docs_2024" json:"total_docs_2024,omitempty"`
	TotalDocs3Years      *int     `gorm:"column:total_docs_3years" json:"total_docs_3years,omitempty"`
	CitationsPerDoc      *float64 `gorm:"column:citations_per_doc" json:"citations_per_doc,omitempty"`
	TotalCitations3Years *int     `gorm:"column:total_citations_3years" json:"total_citations_3years,omitempty"`
}

// TableName overrides the table name used by JournalMetrics to `journal_metrics`.
func (JournalMetrics) TableName() string {
	return "journal_metrics"
}

// JournalISSN is one ISSN attached to a journal. ISSNs are stored as opaque
// identifiers; no checksum validation is performed.
type JournalISSN struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	JournalID uint   `gorm:"column:journal_id;uniqueIndex:idx_journal_issn" json:"journal_id"`
	ISSN      string `gorm:"column:issn;uniqueIndex:idx_journal_issn" json:"issn"`
}

// TableName overrides the table name used by JournalISSN to `journal_issn`.
func (JournalISSN) TableName() string {
	return "journal_issn"
}

// Category is a globally shared subject category, deduplicated by name across
// all journals. Removing a journal must not remove the categories it
// referenced.
type Category struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;uniqueIndex" json:"name"`
}

// TableName overrides the table name used by Category to `categories`.
func (Category) TableName() string {
	return "categories"
}

// SubjectArea is a globally shared subject area, deduplicated by name.
type SubjectArea struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;uniqueIndex" json:"name"`
}

// TableName overrides the table name used by SubjectArea to `subject_areas`.
func (SubjectArea) TableName() string {
	return "subject_areas"
}

// JournalCategory links a journal to a category and carries the journal's
// quartile within that category.
type JournalCategory struct {
	ID         uint    `gorm:"primaryKey;column:id" json:"id"`
	JournalID  uint    `gorm:"column:journal_id;uniqueIndex:idx_journal_category" json:"journal_id"`
	CategoryID uint    `gorm:"column:category_id;uniqueIndex:idx_journal_category" json:"category_id"`
	Quartile   *string `gorm:"column:quartile" json:"quartile,omitempty"`
}

// TableName overrides the table name used by JournalCategory to `journal_categories`.
func (JournalCategory) TableName() string {
	return "journal_categories"
}

// JournalArea links a journal to a subject area.
type JournalArea struct {
	ID        uint `gorm:"primaryKey;column:id" json:"id"`
	JournalID uint `gorm:"column:journal_id;uniqueIndex:idx_journal_area" json:"journal_id"`
	AreaID    uint `gorm:"column:area_id;uniqueIndex:idx_journal_area" json:"area_id"`
}

// TableName overrides the table name used by JournalArea to `journal_areas`.
func (JournalArea) TableName() string {
	return "journal_areas"
}
