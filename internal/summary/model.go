package summary

import (
	"time"

	"meeting-summaries-backend/internal/labeling"
)

// Employee is one attendee/absentee row of the form.
type Employee struct {
	ID          int      `json:"id"`
	Company     string   `json:"company"`
	Name        []string `json:"name"`
	Designation string   `json:"designation"`
}

// HasContent reports whether the row carries any data; blank rows are
// dropped before saving.
func (e Employee) HasContent() bool {
	return e.Company != "" || len(e.Name) > 0 || e.Designation != ""
}

// Task is one action-item row of the form.
type Task struct {
	ID          int        `json:"id"`
	Company     string     `json:"company"`
	Name        []string   `json:"name"`
	Designation string     `json:"designation"`
	Department  string     `json:"department"`
	Subject     string     `json:"subject"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Importance  string     `json:"importance"`
	Description string     `json:"description"`
	ForInfo     []string   `json:"forInfo"`
}

func (t Task) HasContent() bool {
	return t.Company != "" || len(t.Name) > 0 || t.Designation != "" ||
		t.Department != "" || t.Subject != "" || t.StartDate != nil ||
		t.EndDate != nil || t.Importance != "" || t.Description != ""
}

// MeetingContent is one discussed-topic row of the form.
type MeetingContent struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Name        []string   `json:"name"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status"`
}

func (m MeetingContent) HasContent() bool {
	return m.Description != "" || len(m.Name) > 0 || m.DueDate != nil || m.Status != ""
}

// LabelingInput is the classifier state attached to a form submission.
type LabelingInput struct {
	Rows   []labeling.Row        `json:"rows"`
	Common labeling.CommonFields `json:"common"`
}

// Form is an incoming meeting-summary submission.
type Form struct {
	DateOfMeeting  time.Time        `json:"dateOfMeeting"`
	MeetingSummary string           `json:"meetingSummary"`
	Attendees      []Employee       `json:"attendees"`
	Absents        []Employee       `json:"absents"`
	MeetingContent []MeetingContent `json:"meetingContent"`
	Tasks          []Task           `json:"tasks"`
	SelectedUsers  []string         `json:"selectedUsers"`
	Language       string           `json:"language"`
	Dir            bool             `json:"dir"`
	Summarizing    string           `json:"summarizing"`
	SubmitType     string           `json:"submitType"`
	Labeling       LabelingInput    `json:"labeling"`
}

// SubmitResult is returned to the caller after a successful write.
type SubmitResult struct {
	ID          uint64 `json:"id"`
	FormURL     string `json:"formUrl"`
	LibraryPath string `json:"libraryPath"`
	LibraryName string `json:"libraryName"`
}

// StoredSummary is a stored record expanded for editing: the row tables are
// parsed back and the labeling session is reseeded from the saved rows.
type StoredSummary struct {
	ID             uint64              `json:"id"`
	DateOfMeeting  time.Time           `json:"dateOfMeeting"`
	MeetingSummary string              `json:"meetingSummary"`
	Attendees      []Employee          `json:"attendees"`
	Absents        []Employee          `json:"absents"`
	MeetingContent []MeetingContent    `json:"meetingContent"`
	Tasks          []Task              `json:"tasks"`
	SelectedUsers  []string            `json:"selectedUsers"`
	Language       string              `json:"language"`
	Dir            bool                `json:"dir"`
	Summarizing    string              `json:"summarizing"`
	LibraryPath    string              `json:"libraryPath"`
	LibraryName    string              `json:"libraryName"`
	Labeling       LabelingInput       `json:"labeling"`
	SavedRows      []labeling.SavedRow `json:"savedRows"`
	FormURL        string              `json:"formUrl"`
}
