package labeling

// SeedFromSaved rebuilds an editable row list and the shared common fields
// from a previously saved submission. Common fields come from the first
// saved row, the way the session was originally filled.
func SeedFromSaved(saved []SavedRow) ([]Row, CommonFields) {
	if len(saved) == 0 {
		return NewRows(), CommonFields{}
	}

	rows := make([]Row, 0, len(saved))
	for i, s := range saved {
		row := s.Row
		row.ID = i + 1
		rows = append(rows, row)
	}

	first := saved[0]
	common := CommonFields{
		Rev:            ClampRevision(first.Rev),
		RevisionNo:     ClampRevision(first.RevisionNo),
		DocumentStatus: first.DocumentStatus,
		AuthorID:       first.AuthorID,
		Authority:      first.Authority,
	}

	return rows, common
}
