package summary

import "strings"

// Reformat drops rows with no content and renumbers the survivors to a dense
// 1-based sequence.
func Reformat[T any](list []T, hasContent func(T) bool, setID func(*T, int)) []T {
	result := make([]T, 0, len(list))
	for _, row := range list {
		if hasContent(row) {
			result = append(result, row)
		}
	}
	for i := range result {
		setID(&result[i], i+1)
	}
	return result
}

func reformatEmployees(list []Employee) []Employee {
	return Reformat(list, Employee.HasContent, func(e *Employee, id int) { e.ID = id })
}

func reformatTasks(list []Task) []Task {
	return Reformat(list, Task.HasContent, func(t *Task, id int) { t.ID = id })
}

func reformatMeetingContent(list []MeetingContent) []MeetingContent {
	return Reformat(list, MeetingContent.HasContent, func(m *MeetingContent, id int) { m.ID = id })
}

// collectNames gathers every person named anywhere on the form, including the
// for-info recipients of tasks, deduplicated case-insensitively with the
// first spelling kept.
func collectNames(form *Form) []string {
	var all []string
	for _, e := range form.Attendees {
		all = append(all, e.Name...)
	}
	for _, e := range form.Absents {
		all = append(all, e.Name...)
	}
	for _, t := range form.Tasks {
		all = append(all, t.Name...)
		all = append(all, t.ForInfo...)
	}
	for _, m := range form.MeetingContent {
		all = append(all, m.Name...)
	}

	seen := make(map[string]struct{}, len(all))
	names := make([]string, 0, len(all))
	for _, name := range all {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, trimmed)
	}
	return names
}

// collectCompanies gathers the distinct company labels used on the form, for
// the vocabulary-growth write.
func collectCompanies(form *Form) []string {
	var all []string
	for _, e := range form.Attendees {
		all = append(all, e.Company)
	}
	for _, e := range form.Absents {
		all = append(all, e.Company)
	}
	for _, t := range form.Tasks {
		all = append(all, t.Company)
	}

	seen := make(map[string]struct{}, len(all))
	companies := make([]string, 0, len(all))
	for _, company := range all {
		trimmed := strings.TrimSpace(company)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		companies = append(companies, trimmed)
	}
	return companies
}
