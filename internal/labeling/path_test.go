package labeling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPath_FullRow(t *testing.T) {
	builder := NewPathBuilder("/sites/METPRODocCenterC")

	path, err := builder.BuildPath(fullRow(t))

	assert.NoError(t, err)
	assert.Equal(t, "Wp1new/Design/Detailed Design/E1 - Bridge/Structures", path.LibraryPath)
	assert.Equal(t, "Wp1/Design/Detailed Design/E1 - Bridge/Structures", path.LibraryName)
	assert.Equal(t, "/sites/METPRODocCenterC/Wp1new/Design/Detailed Design/E1 - Bridge/Structures", path.RawPath)
	assert.Equal(t, "/sites/METPRODocCenterC/Wp1new/Design/Detailed%20Design/E1%20-%20Bridge/Structures", path.EncodedURL)
}

func TestBuildPath_SkipsUnsetSegments(t *testing.T) {
	catalog := testCatalog()
	builder := NewPathBuilder("/sites/METPRODocCenterC")

	row := Row{
		ID:          1,
		WorkPackage: wpByTitle(catalog, "General"),
		DesignStage: stageByTitle(catalog, "General"),
	}

	path, err := builder.BuildPath(row)

	assert.NoError(t, err)
	assert.Equal(t, "GeneralNew/General", path.LibraryPath)
	assert.Equal(t, "General/General", path.LibraryName)
}

func TestBuildPath_SkipsBlankSegments(t *testing.T) {
	builder := NewPathBuilder("/sites/METPRODocCenterC")

	row := fullRow(t)
	row.Element = &Element{ID: 99, ElementNameAndCode: "   "}

	path, err := builder.BuildPath(row)

	assert.NoError(t, err)
	assert.Equal(t, "Wp1new/Design/Detailed Design/Structures", path.LibraryPath)
}

func TestBuildPath_NoWorkPackage(t *testing.T) {
	builder := NewPathBuilder("/sites/METPRODocCenterC")

	_, err := builder.BuildPath(Row{ID: 1})

	assert.Error(t, err)
}

func TestBuildPath_UnmappedWorkPackage(t *testing.T) {
	builder := NewPathBuilder("/sites/METPRODocCenterC")

	row := fullRow(t)
	row.WorkPackage = &WorkPackage{ID: 99, Title: "Wp99"}

	_, err := builder.BuildPath(row)

	var mappingErr *MappingError
	assert.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, "Wp99", mappingErr.WorkPackage)
}

func TestMappedContainer(t *testing.T) {
	container, err := MappedContainer("coordination (danon)")
	assert.NoError(t, err)
	assert.Equal(t, "coordinationDanonNew", container)

	container, err = MappedContainer("(3rd Party)")
	assert.NoError(t, err)
	assert.Equal(t, "3rdPartyNew", container)

	_, err = MappedContainer("unmapped")
	assert.Error(t, err)
}
