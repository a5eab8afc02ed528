package store

import "time"

// The backing lists are relational tables, one per controlled vocabulary plus
// the record lists written at submit time. Logical list names (the ones the
// original site used) are mapped to table names in list.go.

type WorkPackageRecord struct {
	ID    uint64 `gorm:"primaryKey"`
	Title string `gorm:"uniqueIndex"`
}

func (WorkPackageRecord) TableName() string { return "design_wp" }

type PhaseRecord struct {
	ID     uint64 `gorm:"primaryKey"`
	Title  string
	WPType string `gorm:"column:wp_type"` // "ALL-WP" or "General"
}

func (PhaseRecord) TableName() string { return "design_phase" }

type DesignStageRecord struct {
	ID     uint64 `gorm:"primaryKey"`
	Title  string
	WPType string `gorm:"column:wp_type"`
	// Semicolon-separated titles of the phases this stage applies to.
	Phases string
}

func (DesignStageRecord) TableName() string { return "design_design_stage" }

type ElementRecord struct {
	ID                 uint64 `gorm:"primaryKey"`
	Title              string
	WP                 string `gorm:"column:wp"` // owning work-package title
	Location           string
	ElementCode        string
	ElementName        string
	ElementType        string
	ElementNameAndCode string
}

func (ElementRecord) TableName() string { return "elements" }

type SubDisciplineRecord struct {
	ID              uint64 `gorm:"primaryKey"`
	Title           string
	Discipline      string
	DisciplineValue string
	SubDiscipline   string
}

func (SubDisciplineRecord) TableName() string { return "design_disciplines_sub_disciplines" }

type DocumentStatusRecord struct {
	ID    uint64 `gorm:"primaryKey"`
	Title string
}

func (DocumentStatusRecord) TableName() string { return "design_document_status" }

type CompanyRecord struct {
	ID    uint64 `gorm:"primaryKey"`
	Title string `gorm:"uniqueIndex"`
}

func (CompanyRecord) TableName() string { return "companies" }

// MeetingSummaryRecord is the stored form submission. Row tables from the
// form (attendees, tasks, meeting content) are kept as JSON snapshots, the
// way the original record stored them.
type MeetingSummaryRecord struct {
	ID                  uint64 `gorm:"primaryKey"`
	DateOfMeeting       time.Time
	MeetingSummary      string
	Attendees           string
	Absents             string
	MeetingContent      string
	Tasks               string
	LibraryPath         string
	LibraryName         string
	Language            string
	Dir                 bool
	SelectedUsers       string
	Submit              string
	Summarizing         string
	Copy                string `gorm:"column:copy_to"`
	SelectedLabeling    string
	SelectedLabelingAll string
	SendMailToAll       string
	FormLinkDescription string
	FormLinkURL         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (MeetingSummaryRecord) TableName() string { return "meeting_summaries" }

// LabelingPathRecord preserves every filing path a submission touched,
// together with the raw per-row payloads, for audit.
type LabelingPathRecord struct {
	ID          uint64 `gorm:"primaryKey"`
	Title       string
	FileName    string
	URL         string
	Paths       string
	LabelingArr string
	Payloads    string
	CreatedAt   time.Time
}

func (LabelingPathRecord) TableName() string { return "labeling_paths" }
