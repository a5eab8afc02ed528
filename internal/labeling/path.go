package labeling

import (
	"fmt"
	"net/url"
	"strings"
)

// mappedWorkPackage translates each human work-package label to its storage
// container identifier. The table must stay complete: a row whose work
// package is missing here is a configuration error, not a user input error.
var mappedWorkPackage = map[string]string{
	"Wp1":                  "Wp1new",
	"Wp2.1":                "Wp21new",
	"Wp2.2":                "Wp22new",
	"Wp3":                  "Wp3new",
	"Wp4":                  "Wp4new",
	"Wp5":                  "Wp5new",
	"Wp6":                  "Wp6new",
	"Wp7":                  "Wp7new",
	"Wp8":                  "Wp8new",
	"Wp9":                  "Wp9new",
	"Infra 2":              "Infra2new",
	"Alignment":            "AlignmentNew",
	"General":              "GeneralNew",
	"(3rd Party)":          "3rdPartyNew",
	"coordination (danon)": "coordinationDanonNew",
}

// MappingError reports a work-package title with no storage container entry.
type MappingError struct {
	WorkPackage string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("work package %q has no mapped storage container", e.WorkPackage)
}

// MappedContainer resolves the storage container for a work-package title.
func MappedContainer(wpTitle string) (string, error) {
	container, ok := mappedWorkPackage[wpTitle]
	if !ok {
		return "", &MappingError{WorkPackage: wpTitle}
	}
	return container, nil
}

// RowPath is the derived set of path strings for one row.
type RowPath struct {
	// Site-rooted storage path.
	RawPath string `json:"rawPath"`
	// RawPath with URL-path percent-encoding applied (slashes kept).
	EncodedURL string `json:"encodedUrl"`
	// Container-mapped path used as the storage key.
	LibraryPath string `json:"libraryPath"`
	// Human-readable variant with the unmapped work-package label.
	LibraryName string `json:"libraryName"`
}

// PathBuilder derives path strings from a row's selections. Derivation is
// pure: no I/O, deterministic for a given row.
type PathBuilder struct {
	siteRoot string
}

func NewPathBuilder(siteRoot string) *PathBuilder {
	return &PathBuilder{siteRoot: strings.TrimSuffix(siteRoot, "/")}
}

// BuildPath derives the path strings for a row. The work package must be set
// and mapped.
func (b *PathBuilder) BuildPath(row Row) (RowPath, error) {
	if row.WorkPackage == nil {
		return RowPath{}, fmt.Errorf("row %d has no work package", row.ID)
	}

	container, err := MappedContainer(row.WorkPackage.Title)
	if err != nil {
		return RowPath{}, err
	}

	joined := strings.Join(pathSegments(row), "/")
	rawPath := b.siteRoot + "/" + container + "/" + joined

	// Escape only characters unsafe in a path component; query-style
	// encoding would double-encode the slashes between segments.
	encoded := (&url.URL{Path: rawPath}).EscapedPath()

	return RowPath{
		RawPath:     rawPath,
		EncodedURL:  encoded,
		LibraryPath: container + "/" + joined,
		LibraryName: row.WorkPackage.Title + "/" + joined,
	}, nil
}

// pathSegments is the ordered, null-filtered segment list below the
// container: phase, design stage, element display code, sub-discipline name.
func pathSegments(row Row) []string {
	candidates := make([]string, 0, 4)
	if row.Phase != nil {
		candidates = append(candidates, row.Phase.Title)
	}
	if row.DesignStage != nil {
		candidates = append(candidates, row.DesignStage.Title)
	}
	if row.Element != nil {
		candidates = append(candidates, row.Element.ElementNameAndCode)
	}
	if row.SubDiscipline != nil {
		candidates = append(candidates, row.SubDiscipline.SubDiscipline)
	}

	segments := make([]string, 0, len(candidates))
	for _, segment := range candidates {
		if strings.TrimSpace(segment) != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
