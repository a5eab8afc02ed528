package store

import (
	"fmt"
	"regexp"
)

// Logical list names, as the original site named them.
const (
	ListWorkPackages   = "Design_WP"
	ListPhases         = "Design_Phase"
	ListDesignStages   = "Design_DesignStage"
	ListElements       = "Elements"
	ListSubDisciplines = "DesignDisciplinesSubDisciplines"
	ListDocumentStatus = "Design_DocumentStatus"
	ListCompanies      = "Companies"
	ListSummaries      = "MeetingSummaries"
	ListLabelingPaths  = "labelingPaths"
)

var listTables = map[string]string{
	ListWorkPackages:   WorkPackageRecord{}.TableName(),
	ListPhases:         PhaseRecord{}.TableName(),
	ListDesignStages:   DesignStageRecord{}.TableName(),
	ListElements:       ElementRecord{}.TableName(),
	ListSubDisciplines: SubDisciplineRecord{}.TableName(),
	ListDocumentStatus: DocumentStatusRecord{}.TableName(),
	ListCompanies:      CompanyRecord{}.TableName(),
	ListSummaries:      MeetingSummaryRecord{}.TableName(),
	ListLabelingPaths:  LabelingPathRecord{}.TableName(),
}

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func tableFor(listName string) (string, error) {
	table, ok := listTables[listName]
	if !ok {
		return "", fmt.Errorf("unknown list %q", listName)
	}
	return table, nil
}

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid field name %q", name)
	}
	return nil
}
