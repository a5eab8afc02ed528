package labeling

import "strings"

// WPType partitions the phase and design-stage vocabularies into the
// work-package-specific track and the general track.
type WPType string

const (
	WPTypeAllWP   WPType = "ALL-WP"
	WPTypeGeneral WPType = "General"
)

type WorkPackage struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

type Phase struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	WPType WPType `json:"wpType"`
}

type DesignStage struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	WPType WPType `json:"wpType"`
	// Titles of the phases this stage applies to; only checked on the
	// General track.
	Phases []string `json:"phases"`
}

type Element struct {
	ID                 uint64 `json:"id"`
	Title              string `json:"title"`
	WP                 string `json:"wp"` // owning work-package title
	Location           string `json:"location"`
	ElementCode        string `json:"elementCode"`
	ElementName        string `json:"elementName"`
	ElementType        string `json:"elementType"`
	ElementNameAndCode string `json:"elementNameAndCode"`
}

type SubDiscipline struct {
	ID              uint64 `json:"id"`
	Title           string `json:"title"`
	Discipline      string `json:"discipline"`
	DisciplineValue string `json:"disciplineValue"`
	SubDiscipline   string `json:"subDiscipline"`
}

type DocumentStatus struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// Row is one classification path for a document. Ids are a dense 1-based
// sequence over the row list.
type Row struct {
	ID            int            `json:"id"`
	WorkPackage   *WorkPackage   `json:"workPackage"`
	Phase         *Phase         `json:"phase"`
	DesignStage   *DesignStage   `json:"designStage"`
	Element       *Element       `json:"element"`
	SubDiscipline *SubDiscipline `json:"subDiscipline"`
}

// CommonFields are shared across every row of one submission.
type CommonFields struct {
	Rev            int             `json:"rev"`
	RevisionNo     int             `json:"revisionNo"`
	DocumentStatus *DocumentStatus `json:"documentStatus"`
	AuthorID       *uint64         `json:"authorId"`
	Authority      string          `json:"authority"`
}

// Field names a selector within a row.
type Field string

const (
	FieldWorkPackage   Field = "workPackage"
	FieldPhase         Field = "phase"
	FieldDesignStage   Field = "designStage"
	FieldElement       Field = "element"
	FieldSubDiscipline Field = "subDiscipline"
)

const wpTrackPrefix = "Wp"

// Work packages on the ALL-WP phase/stage track that don't carry the "Wp"
// prefix. Phase is mandatory exactly for this track.
var allWPTrackSet = []string{"Infra 2", "Alignment", "(3rd Party)", "coordination (danon)"}

// Administrative buckets with no physical element breakdown.
var noElementsSet = []string{"Infra 2", "General"}

// Administrative buckets with no sub-discipline breakdown.
var noSubDisciplinesSet = []string{"General", "Alignment"}

// Valid cascade targets that must not appear as addable catalog entries.
var excludedCatalogWorkPackages = []string{"(3rd Party)", "coordination (danon)"}

func contains(set []string, title string) bool {
	for _, s := range set {
		if s == title {
			return true
		}
	}
	return false
}

// usesAllWPTrack reports whether the work package selects the ALL-WP
// phase/design-stage track.
func usesAllWPTrack(wpTitle string) bool {
	return strings.HasPrefix(wpTitle, wpTrackPrefix) || contains(allWPTrackSet, wpTitle)
}

// HasElements reports whether the work package has an element breakdown.
func HasElements(wpTitle string) bool {
	return !contains(noElementsSet, wpTitle)
}

// HasSubDisciplines reports whether the work package has a sub-discipline
// breakdown.
func HasSubDisciplines(wpTitle string) bool {
	return !contains(noSubDisciplinesSet, wpTitle)
}

// PhaseRequired reports whether phase selection is mandatory for the work
// package.
func PhaseRequired(wpTitle string) bool {
	return usesAllWPTrack(wpTitle)
}
