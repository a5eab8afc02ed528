package labeling

import (
	"encoding/json"
	"fmt"
)

// NewRows returns the initial row list: a single empty row.
func NewRows() []Row {
	return []Row{{ID: 1}}
}

// SetField returns a copy of the row with the named field replaced. Picking a
// different work package resets every dependent field: no stale child
// selection may reference a parent that no longer matches.
func SetField(row Row, field Field, value json.RawMessage) (Row, error) {
	switch field {
	case FieldWorkPackage:
		wp, err := decodeValue[WorkPackage](value)
		if err != nil {
			return row, err
		}
		if sameWorkPackage(row.WorkPackage, wp) {
			row.WorkPackage = wp
			return row, nil
		}
		return Row{ID: row.ID, WorkPackage: wp}, nil
	case FieldPhase:
		phase, err := decodeValue[Phase](value)
		if err != nil {
			return row, err
		}
		row.Phase = phase
	case FieldDesignStage:
		stage, err := decodeValue[DesignStage](value)
		if err != nil {
			return row, err
		}
		row.DesignStage = stage
	case FieldElement:
		element, err := decodeValue[Element](value)
		if err != nil {
			return row, err
		}
		row.Element = element
	case FieldSubDiscipline:
		sub, err := decodeValue[SubDiscipline](value)
		if err != nil {
			return row, err
		}
		row.SubDiscipline = sub
	default:
		return row, fmt.Errorf("unknown field %q", field)
	}
	return row, nil
}

func sameWorkPackage(a, b *WorkPackage) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID && a.Title == b.Title
}

func decodeValue[T any](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ApplyFieldChange updates the row with the matching id within the list.
func ApplyFieldChange(rows []Row, rowID int, field Field, value json.RawMessage) ([]Row, error) {
	result := make([]Row, len(rows))
	found := false
	for i, row := range rows {
		if row.ID != rowID {
			result[i] = row
			continue
		}
		updated, err := SetField(row, field, value)
		if err != nil {
			return rows, err
		}
		result[i] = updated
		found = true
	}
	if !found {
		return rows, fmt.Errorf("row %d not found", rowID)
	}
	return result, nil
}

// AddRow appends an empty row with the next sequential id. The template never
// copies a sibling's data.
func AddRow(rows []Row) []Row {
	result := make([]Row, len(rows), len(rows)+1)
	copy(result, rows)
	return append(result, Row{ID: len(rows) + 1})
}

// DeleteRow removes the row with the matching id and renumbers the rest to a
// dense 1-based sequence. Deleting the last remaining row is a no-op: at
// least one row always exists.
func DeleteRow(rows []Row, rowID int) []Row {
	if len(rows) == 1 {
		return rows
	}

	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.ID != rowID {
			filtered = append(filtered, row)
		}
	}

	for i := range filtered {
		filtered[i].ID = i + 1
	}
	return filtered
}

// IsRowValid reports whether the row is a complete classification path.
// Element and sub-discipline are required unless the work package has no such
// breakdown; phase is required exactly on the ALL-WP track.
func IsRowValid(row Row) bool {
	if row.WorkPackage == nil || row.DesignStage == nil {
		return false
	}

	wpTitle := row.WorkPackage.Title

	if row.Element == nil && HasElements(wpTitle) {
		return false
	}
	if row.SubDiscipline == nil && HasSubDisciplines(wpTitle) {
		return false
	}
	if row.Phase == nil && PhaseRequired(wpTitle) {
		return false
	}
	return true
}

// AllRowsValid gates submission: every row must be valid.
func AllRowsValid(rows []Row) bool {
	for _, row := range rows {
		if !IsRowValid(row) {
			return false
		}
	}
	return len(rows) > 0
}

const (
	revisionMin = 0
	revisionMax = 10
)

// ClampRevision keeps Rev/RevisionNo inside [0,10] on every edit.
func ClampRevision(value int) int {
	if value > revisionMax {
		return revisionMax
	}
	if value < revisionMin {
		return revisionMin
	}
	return value
}

// NormalizeCommon clamps the revision fields of an incoming common-fields
// value.
func NormalizeCommon(common CommonFields) CommonFields {
	common.Rev = ClampRevision(common.Rev)
	common.RevisionNo = ClampRevision(common.RevisionNo)
	return common
}
