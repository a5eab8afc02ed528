package labeling

import "fmt"

// CascadeFilter computes the legal option set for each selector given the
// prior selections in the same row.
type CascadeFilter struct {
	catalog *Catalog
}

func NewCascadeFilter(catalog *Catalog) *CascadeFilter {
	return &CascadeFilter{catalog: catalog}
}

// WorkPackageOptions is always the full deduplicated catalog; the two
// administrative pseudo-work-packages were already excluded at load time.
func (f *CascadeFilter) WorkPackageOptions() []WorkPackage {
	return f.catalog.WorkPackages
}

// PhaseOptions is empty until a work package is picked, then filtered to the
// track the work package selects.
func (f *CascadeFilter) PhaseOptions(row Row) []Phase {
	if row.WorkPackage == nil {
		return nil
	}

	track := WPTypeGeneral
	if usesAllWPTrack(row.WorkPackage.Title) {
		track = WPTypeAllWP
	}

	options := make([]Phase, 0, len(f.catalog.Phases))
	for _, phase := range f.catalog.Phases {
		if phase.WPType == track {
			options = append(options, phase)
		}
	}
	return options
}

// DesignStageOptions is empty until both work package and phase are picked.
// The General track additionally requires the stage's applicable-phase set to
// include the selected phase.
func (f *CascadeFilter) DesignStageOptions(row Row) []DesignStage {
	if row.WorkPackage == nil || row.Phase == nil {
		return nil
	}

	allWP := usesAllWPTrack(row.WorkPackage.Title)

	options := make([]DesignStage, 0, len(f.catalog.DesignStages))
	for _, stage := range f.catalog.DesignStages {
		if allWP {
			if stage.WPType == WPTypeAllWP {
				options = append(options, stage)
			}
			continue
		}
		if stage.WPType == WPTypeGeneral && contains(stage.Phases, row.Phase.Title) {
			options = append(options, stage)
		}
	}
	return options
}

// ElementOptions is empty for work packages with no element breakdown and
// until work package, phase and design stage are all picked; otherwise it is
// the elements owned by the selected work package.
func (f *CascadeFilter) ElementOptions(row Row) []Element {
	if row.WorkPackage == nil || !HasElements(row.WorkPackage.Title) {
		return nil
	}
	if row.Phase == nil || row.DesignStage == nil {
		return nil
	}

	options := make([]Element, 0, len(f.catalog.Elements))
	for _, element := range f.catalog.Elements {
		if element.WP == row.WorkPackage.Title {
			options = append(options, element)
		}
	}
	return options
}

// SubDisciplineOptions is the full catalog, except for work packages with no
// sub-discipline breakdown.
func (f *CascadeFilter) SubDisciplineOptions(row Row) []SubDiscipline {
	if row.WorkPackage != nil && !HasSubDisciplines(row.WorkPackage.Title) {
		return nil
	}
	return f.catalog.SubDisciplines
}

// FieldHidden reports whether the selector is skipped entirely for the row's
// work package (treated as always satisfied).
func (f *CascadeFilter) FieldHidden(field Field, row Row) bool {
	if row.WorkPackage == nil {
		return false
	}
	switch field {
	case FieldElement:
		return !HasElements(row.WorkPackage.Title)
	case FieldSubDiscipline:
		return !HasSubDisciplines(row.WorkPackage.Title)
	}
	return false
}

// Option is the id/label pair a selector renders.
type Option struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
}

// OptionsFor returns the legal options for one selector as id/label pairs.
func (f *CascadeFilter) OptionsFor(field Field, row Row) ([]Option, error) {
	switch field {
	case FieldWorkPackage:
		options := make([]Option, 0, len(f.catalog.WorkPackages))
		for _, wp := range f.WorkPackageOptions() {
			options = append(options, Option{ID: wp.ID, Label: wp.Title})
		}
		return options, nil
	case FieldPhase:
		phases := f.PhaseOptions(row)
		options := make([]Option, 0, len(phases))
		for _, p := range phases {
			options = append(options, Option{ID: p.ID, Label: p.Title})
		}
		return options, nil
	case FieldDesignStage:
		stages := f.DesignStageOptions(row)
		options := make([]Option, 0, len(stages))
		for _, ds := range stages {
			options = append(options, Option{ID: ds.ID, Label: ds.Title})
		}
		return options, nil
	case FieldElement:
		elements := f.ElementOptions(row)
		options := make([]Option, 0, len(elements))
		for _, e := range elements {
			options = append(options, Option{ID: e.ID, Label: e.ElementNameAndCode})
		}
		return options, nil
	case FieldSubDiscipline:
		subs := f.SubDisciplineOptions(row)
		options := make([]Option, 0, len(subs))
		for _, sd := range subs {
			options = append(options, Option{ID: sd.ID, Label: sd.SubDiscipline})
		}
		return options, nil
	}
	return nil, fmt.Errorf("unknown field %q", field)
}
