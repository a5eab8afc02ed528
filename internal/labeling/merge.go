package labeling

import (
	"encoding/json"
	"fmt"
)

// PathRef records one filing path of a submission.
type PathRef struct {
	URL string `json:"url"`
}

// PhaseList is the aggregated phase field of a merged payload: every phase
// touched by any row, in row order, duplicates preserved.
type PhaseList struct {
	Results []string `json:"results"`
}

// RowSubmission pairs one row's payload with its derived storage path.
type RowSubmission struct {
	Payload     Payload `json:"payload"`
	LibraryPath string  `json:"libraryPath"`
}

// MergedSubmission is the consolidated write for a document classified by
// several rows.
type MergedSubmission struct {
	Payload    Payload   `json:"payload"`
	PhaseArray []string  `json:"phaseArray"`
	ExtraPaths []PathRef `json:"extraPaths"`
}

// Merge combines the per-row payloads into one record payload: the first
// row's payload is the base (primary path), every lookup-reference field
// becomes the set union of all rows' ids, and the scalar phase is lifted
// into the aggregated phase list. The non-primary paths plus a cycle-free
// serialized copy of the merged payload are attached under the "paths" field
// for audit.
func Merge(rows []RowSubmission) (MergedSubmission, error) {
	if len(rows) == 0 {
		return MergedSubmission{}, fmt.Errorf("nothing to merge")
	}

	// Union the lookup-reference fields across rows. Duplicate ids collapse;
	// within one field, ids keep first-occurrence order.
	accumulated := make(map[string]*LookupRef)
	phaseArray := make([]string, 0, len(rows))

	for _, row := range rows {
		for key, value := range row.Payload {
			ref, ok := value.(*LookupRef)
			if !ok {
				continue
			}
			acc, exists := accumulated[key]
			if !exists {
				acc = &LookupRef{TargetType: ref.TargetType}
				accumulated[key] = acc
			}
			for _, id := range ref.Results {
				if !containsID(acc.Results, id) {
					acc.Results = append(acc.Results, id)
				}
			}
		}
		if phase, ok := row.Payload[PayloadPhase].(string); ok && phase != "" {
			phaseArray = append(phaseArray, phase)
		}
	}

	merged := make(Payload, len(rows[0].Payload)+2)
	for key, value := range rows[0].Payload {
		merged[key] = value
	}
	for key, ref := range accumulated {
		merged[key] = ref
	}
	merged[PayloadPhase] = PhaseList{Results: phaseArray}

	extraPaths := make([]PathRef, 0, len(rows)-1)
	for _, row := range rows[1:] {
		extraPaths = append(extraPaths, PathRef{URL: row.LibraryPath})
	}

	audit, err := buildAuditBlob(merged, extraPaths)
	if err != nil {
		return MergedSubmission{}, err
	}
	merged[PayloadPaths] = audit

	return MergedSubmission{
		Payload:    merged,
		PhaseArray: phaseArray,
		ExtraPaths: extraPaths,
	}, nil
}

// buildAuditBlob serializes a copy of the merged payload together with the
// non-primary paths. The self-referential "paths" field is stripped before
// serializing into itself.
func buildAuditBlob(merged Payload, extraPaths []PathRef) (string, error) {
	audit := make(map[string]any, len(merged)+2)
	for key, value := range merged {
		if key == PayloadPaths {
			continue
		}
		audit[key] = value
	}

	extraPayload := make(map[string]any, len(merged))
	for key, value := range merged {
		if key == PayloadPaths || key == PayloadMetadata {
			continue
		}
		extraPayload[key] = value
	}

	audit["extraPaths"] = extraPaths
	audit["extraPayload"] = extraPayload

	raw, err := json.Marshal(audit)
	if err != nil {
		return "", fmt.Errorf("serialize merged payload: %w", err)
	}
	return string(raw), nil
}

func containsID(ids []uint64, id uint64) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
