package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"meeting-summaries-backend/internal/directory"
	"meeting-summaries-backend/internal/doccenter"
	"meeting-summaries-backend/internal/errors"
	"meeting-summaries-backend/internal/labeling"
	"meeting-summaries-backend/internal/store"
	"meeting-summaries-backend/internal/worker"
)

type Service interface {
	Submit(ctx context.Context, form *Form) (*SubmitResult, error)
	GetByID(ctx context.Context, id uint64) (*StoredSummary, error)
	Update(ctx context.Context, id uint64, form *Form) (*SubmitResult, error)
}

type DefaultService struct {
	records   store.RecordStore
	labeling  labeling.Service
	directory directory.Service
	pool      *worker.Pool
	docCenter *doccenter.Client
	frontend  string
}

func NewService(
	records store.RecordStore,
	labelingService labeling.Service,
	directoryService directory.Service,
	pool *worker.Pool,
	docCenter *doccenter.Client,
	frontend string,
) Service {
	return &DefaultService{
		records:   records,
		labeling:  labelingService,
		directory: directoryService,
		pool:      pool,
		docCenter: docCenter,
		frontend:  frontend,
	}
}

// Submit validates the form, builds the labeling submission, writes the
// summary record and schedules the secondary writes. The record write and the
// labeling-paths write are deliberately not transactional: a failed secondary
// write is logged and the record stands.
func (s *DefaultService) Submit(ctx context.Context, form *Form) (*SubmitResult, error) {
	if form.MeetingSummary == "" {
		return nil, errors.UnprocessableEntity("Meeting summary title is required", nil)
	}

	submission, err := s.labeling.BuildSubmission(ctx, form.Labeling.Rows, form.Labeling.Common)
	if err != nil {
		return nil, err
	}

	fields, err := s.recordFields(ctx, form, submission)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields["created_at"] = now
	fields["updated_at"] = now

	id, err := s.records.Add(ctx, store.ListSummaries, fields)
	if err != nil {
		return nil, err
	}

	formURL := s.formURL(id)

	// The form link points back at the stored record; a failed update keeps
	// the record usable, so only log it.
	err = s.records.Update(ctx, store.ListSummaries, id, store.Item{
		"form_link_description": form.MeetingSummary,
		"form_link_url":         formURL,
	})
	if err != nil {
		log.Printf("[SUMMARY] form link update failed for %d: %v", id, err)
	}

	s.scheduleSecondaryWrites(form, submission, formURL)

	return &SubmitResult{
		ID:          id,
		FormURL:     formURL,
		LibraryPath: submission.LibraryPath,
		LibraryName: submission.LibraryName,
	}, nil
}

// Update rewrites an existing record with the edited form, rebuilding the
// labeling submission from scratch.
func (s *DefaultService) Update(ctx context.Context, id uint64, form *Form) (*SubmitResult, error) {
	if _, err := s.records.GetByID(ctx, store.ListSummaries, id); err != nil {
		return nil, errors.NotFound("Meeting summary not found", err)
	}

	submission, err := s.labeling.BuildSubmission(ctx, form.Labeling.Rows, form.Labeling.Common)
	if err != nil {
		return nil, err
	}

	fields, err := s.recordFields(ctx, form, submission)
	if err != nil {
		return nil, err
	}

	formURL := s.formURL(id)
	fields["updated_at"] = time.Now().UTC()
	fields["form_link_description"] = form.MeetingSummary
	fields["form_link_url"] = formURL

	if err := s.records.Update(ctx, store.ListSummaries, id, fields); err != nil {
		return nil, err
	}

	s.scheduleSecondaryWrites(form, submission, formURL)

	return &SubmitResult{
		ID:          id,
		FormURL:     formURL,
		LibraryPath: submission.LibraryPath,
		LibraryName: submission.LibraryName,
	}, nil
}

// recordFields flattens the form plus the built labeling submission into the
// stored record's columns.
func (s *DefaultService) recordFields(ctx context.Context, form *Form, submission *labeling.Submission) (store.Item, error) {
	attendees := reformatEmployees(form.Attendees)
	absents := reformatEmployees(form.Absents)
	meetingContent := reformatMeetingContent(form.MeetingContent)
	tasks := reformatTasks(form.Tasks)

	names := collectNames(form)
	recipients, err := s.directory.ResolveEmails(ctx, names)
	if err != nil {
		log.Printf("[SUMMARY] recipient lookup failed: %v", err)
		recipients = ""
	}

	merged := submission.Merged

	finalLabeling := map[string]any{
		"row":     submission.Rows[0],
		"phase":   labeling.PhaseList{Results: merged.PhaseArray},
		"payload": merged.Payload,
	}

	fields := store.Item{
		"date_of_meeting":       form.DateOfMeeting.UTC(),
		"meeting_summary":       form.MeetingSummary,
		"attendees":             mustJSON(attendees),
		"absents":               mustJSON(absents),
		"meeting_content":       mustJSON(meetingContent),
		"tasks":                 mustJSON(tasks),
		"library_path":          submission.LibraryPath,
		"library_name":          submission.LibraryName,
		"language":              form.Language,
		"dir":                   form.Dir,
		"selected_users":        mustJSON(form.SelectedUsers),
		"submit":                form.SubmitType,
		"summarizing":           form.Summarizing,
		"copy_to":               strings.Join(form.SelectedUsers, ", "),
		"selected_labeling":     mustJSON(finalLabeling),
		"selected_labeling_all": mustJSON(submission.Rows),
		"send_mail_to_all":      recipients,
	}
	return fields, nil
}

// scheduleSecondaryWrites queues everything that may follow the record write:
// the labeling-paths audit record, company vocabulary growth, folder creation
// at the document center and the optional summary mail.
func (s *DefaultService) scheduleSecondaryWrites(form *Form, submission *labeling.Submission, formURL string) {
	title := form.MeetingSummary
	rows := submission.Rows
	companies := collectCompanies(form)
	submitType := form.SubmitType
	names := collectNames(form)

	s.pool.Submit(func(ctx context.Context) error {
		return s.writeLabelingPaths(ctx, title, rows)
	})

	s.pool.Submit(func(ctx context.Context) error {
		return s.directory.EnsureCompanies(ctx, companies)
	})

	for _, row := range rows {
		libraryPath := row.Path.LibraryPath
		s.pool.Submit(func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return s.docCenter.EnsureFolder(ctx, libraryPath)
		})
	}

	if submitType == "send" || submitType == "SendToMeAsEmail" {
		s.pool.Submit(func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			resolved, err := s.directory.ResolveEmails(ctx, names)
			if err != nil {
				return err
			}
			return s.docCenter.NotifySummaryMail(ctx, resolved, title, formURL)
		})
	}
}

// writeLabelingPaths stores every filing path the submission touched.
func (s *DefaultService) writeLabelingPaths(ctx context.Context, title string, rows []labeling.SavedRow) error {
	paths := make([]labeling.PathRef, 0, len(rows))
	payloads := make([]labeling.Payload, 0, len(rows))
	for _, row := range rows {
		paths = append(paths, labeling.PathRef{URL: row.Path.LibraryPath})
		payloads = append(payloads, row.Payload)
	}

	_, err := s.records.Add(ctx, store.ListLabelingPaths, store.Item{
		"title":        title,
		"file_name":    title,
		"url":          rows[0].Path.LibraryPath,
		"paths":        mustJSON(paths),
		"labeling_arr": mustJSON(rows),
		"payloads":     mustJSON(payloads),
		"created_at":   time.Now().UTC(),
	})
	return err
}

func (s *DefaultService) GetByID(ctx context.Context, id uint64) (*StoredSummary, error) {
	item, err := s.records.GetByID(ctx, store.ListSummaries, id)
	if err != nil {
		return nil, errors.NotFound("Meeting summary not found", err)
	}

	stored := &StoredSummary{
		ID:             id,
		MeetingSummary: itemString(item, "meeting_summary"),
		Language:       itemString(item, "language"),
		Dir:            itemBool(item, "dir"),
		Summarizing:    itemString(item, "summarizing"),
		LibraryPath:    itemString(item, "library_path"),
		LibraryName:    itemString(item, "library_name"),
		FormURL:        itemString(item, "form_link_url"),
	}
	if t, ok := item["date_of_meeting"].(time.Time); ok {
		stored.DateOfMeeting = t
	}

	unmarshalColumn(item, "attendees", &stored.Attendees)
	unmarshalColumn(item, "absents", &stored.Absents)
	unmarshalColumn(item, "meeting_content", &stored.MeetingContent)
	unmarshalColumn(item, "tasks", &stored.Tasks)
	unmarshalColumn(item, "selected_users", &stored.SelectedUsers)
	unmarshalColumn(item, "selected_labeling_all", &stored.SavedRows)

	rows, common := labeling.SeedFromSaved(stored.SavedRows)
	stored.Labeling = LabelingInput{Rows: rows, Common: common}

	return stored, nil
}

func (s *DefaultService) formURL(id uint64) string {
	return fmt.Sprintf("%s/SitePages/MeetingSummaries.aspx?FormID=%d", s.frontend, id)
}

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[SUMMARY] marshal failed: %v", err)
		return "null"
	}
	return string(raw)
}

func itemString(item store.Item, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}

func itemBool(item store.Item, key string) bool {
	if v, ok := item[key].(bool); ok {
		return v
	}
	return false
}

func unmarshalColumn(item store.Item, key string, dest any) {
	raw, ok := item[key].(string)
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("[SUMMARY] failed to parse stored %s: %v", key, err)
	}
}
