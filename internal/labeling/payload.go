package labeling

// Backend field identifiers of the stored record. Hyphen/space-free names
// live only here, at the serialization boundary.
const (
	PayloadMetadata       = "__metadata"
	PayloadRev            = "Rev"
	PayloadRevisionNo     = "RevisionNo"
	PayloadAuthority      = "Authority"
	PayloadPhase          = "Phase"
	PayloadDesignerName   = "DesignerNameId"
	PayloadElementRef     = "ElementNameAndCodeId"
	PayloadSubDiscRef     = "subDisciplineId"
	PayloadWorkPackageRef = "OData__WPId"
	PayloadDesignStageRef = "OData__designStageId"
	PayloadDocStatusRef   = "OData__DocumentStatusId"
	PayloadPaths          = "paths"
)

// LookupRefType marks a multi-value integer-id lookup reference.
const LookupRefType = "Collection(Edm.Int32)"

// LookupRef is a typed lookup-reference block: the ids of the referenced
// list rows for one target field.
type LookupRef struct {
	TargetType string   `json:"targetType"`
	Results    []uint64 `json:"results"`
}

func newLookupRef(ids ...uint64) *LookupRef {
	return &LookupRef{TargetType: LookupRefType, Results: ids}
}

// Payload is the backend's structured update payload for one record.
type Payload map[string]any

// PayloadBuilder converts a row plus the shared common fields into the
// backend payload. It holds the catalog for the NR sentinel substitution.
type PayloadBuilder struct {
	catalog *Catalog
}

func NewPayloadBuilder(catalog *Catalog) *PayloadBuilder {
	return &PayloadBuilder{catalog: catalog}
}

// BuildPayload is a pure transformation: scalar fields are included only when
// non-empty, lookup selections become typed reference blocks, and a row whose
// work package requires an element or sub-discipline that was never picked
// gets the catalog's NR sentinel instead of a hole in the record.
func (b *PayloadBuilder) BuildPayload(row Row, common CommonFields) (Payload, error) {
	if row.WorkPackage == nil {
		return nil, &MappingError{WorkPackage: ""}
	}
	container, err := MappedContainer(row.WorkPackage.Title)
	if err != nil {
		return nil, err
	}

	payload := Payload{
		PayloadMetadata:   map[string]string{"type": container + "Item"},
		PayloadRev:        ClampRevision(common.Rev),
		PayloadRevisionNo: ClampRevision(common.RevisionNo),
	}

	if common.Authority != "" {
		payload[PayloadAuthority] = common.Authority
	}

	element := row.Element
	if element == nil && HasElements(row.WorkPackage.Title) {
		element = b.catalog.ElementNR()
	}
	if element != nil {
		payload[PayloadElementRef] = newLookupRef(element.ID)
	}

	subDiscipline := row.SubDiscipline
	if subDiscipline == nil && HasSubDisciplines(row.WorkPackage.Title) {
		subDiscipline = b.catalog.SubDisciplineNR()
	}
	if subDiscipline != nil {
		payload[PayloadSubDiscRef] = newLookupRef(subDiscipline.ID)
	}

	payload[PayloadWorkPackageRef] = newLookupRef(row.WorkPackage.ID)

	if row.DesignStage != nil {
		payload[PayloadDesignStageRef] = newLookupRef(row.DesignStage.ID)
	}
	if common.DocumentStatus != nil {
		payload[PayloadDocStatusRef] = newLookupRef(common.DocumentStatus.ID)
	}
	if common.AuthorID != nil {
		payload[PayloadDesignerName] = *common.AuthorID
	}
	if row.Phase != nil && row.Phase.Title != "" {
		payload[PayloadPhase] = row.Phase.Title
	}

	return payload, nil
}
