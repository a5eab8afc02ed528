package labeling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"meeting-summaries-backend/internal/store"
)

// MockVocabularyStore is a mock implementation of store.VocabularyStore
type MockVocabularyStore struct {
	mock.Mock
}

func (m *MockVocabularyStore) Fetch(ctx context.Context, listName string, opts store.FetchOptions) ([]store.Item, error) {
	args := m.Called(ctx, listName, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Item), args.Error(1)
}

func stubVocabularies(m *MockVocabularyStore) {
	m.On("Fetch", mock.Anything, store.ListWorkPackages, mock.Anything).Return([]store.Item{
		{"id": int64(1), "title": "Wp1"},
		{"id": int64(2), "title": "Wp1"}, // duplicate title, dropped
		{"id": int64(3), "title": "General"},
		{"id": int64(4), "title": "(3rd Party)"},          // excluded from catalog
		{"id": int64(5), "title": "coordination (danon)"}, // excluded from catalog
	}, nil)

	m.On("Fetch", mock.Anything, store.ListPhases, mock.Anything).Return([]store.Item{
		{"id": int64(10), "title": "Design", "wp_type": "ALL-WP"},
		{"id": int64(11), "title": "General", "wp_type": "General"},
	}, nil)

	m.On("Fetch", mock.Anything, store.ListDesignStages, mock.Anything).Return([]store.Item{
		{"id": int64(20), "title": "Preliminary Design", "wp_type": "ALL-WP", "phases": "Tender; Design"},
	}, nil)

	m.On("Fetch", mock.Anything, store.ListElements, mock.Anything).Return([]store.Item{
		{"id": int64(30), "title": "Bridge", "wp": "Wp1", "element_name_and_code": "E1 - Bridge"},
		{"id": int64(31), "title": "Bridge copy", "wp": "Wp1", "element_name_and_code": "E1 - Bridge"},
		{"id": int64(32), "title": "NR", "element_name_and_code": "NR"},
	}, nil)

	m.On("Fetch", mock.Anything, store.ListSubDisciplines, mock.Anything).Return([]store.Item{
		{"id": int64(40), "title": "Structures", "sub_discipline": "Structures"},
		{"id": int64(41), "title": "NR", "sub_discipline": "NR"},
	}, nil)

	m.On("Fetch", mock.Anything, store.ListDocumentStatus, mock.Anything).Return([]store.Item{
		{"id": int64(50), "title": "Draft"},
	}, nil)
}

func TestCatalogLoad_Success(t *testing.T) {
	vocabularies := new(MockVocabularyStore)
	stubVocabularies(vocabularies)

	catalog, err := NewCatalogLoader(vocabularies, 5000).Load(context.Background())

	assert.NoError(t, err)

	// Duplicate and excluded work packages are dropped.
	assert.Len(t, catalog.WorkPackages, 2)
	assert.Equal(t, "Wp1", catalog.WorkPackages[0].Title)
	assert.Equal(t, uint64(1), catalog.WorkPackages[0].ID)
	assert.Equal(t, "General", catalog.WorkPackages[1].Title)

	assert.Len(t, catalog.Phases, 2)
	assert.Equal(t, WPTypeAllWP, catalog.Phases[0].WPType)

	assert.Len(t, catalog.DesignStages, 1)
	assert.Equal(t, []string{"Tender", "Design"}, catalog.DesignStages[0].Phases)

	// Elements dedupe on the composite display code.
	assert.Len(t, catalog.Elements, 2)
	assert.NotNil(t, catalog.ElementNR())
	assert.NotNil(t, catalog.SubDisciplineNR())

	assert.Len(t, catalog.DocumentStatuses, 1)
	vocabularies.AssertExpectations(t)
}

func TestCatalogLoad_MissingSentinel(t *testing.T) {
	vocabularies := new(MockVocabularyStore)
	vocabularies.On("Fetch", mock.Anything, store.ListWorkPackages, mock.Anything).Return([]store.Item{}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListPhases, mock.Anything).Return([]store.Item{}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListDesignStages, mock.Anything).Return([]store.Item{}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListElements, mock.Anything).Return([]store.Item{
		{"id": int64(30), "title": "Bridge", "element_name_and_code": "E1 - Bridge"},
	}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListSubDisciplines, mock.Anything).Return([]store.Item{
		{"id": int64(41), "title": "NR", "sub_discipline": "NR"},
	}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListDocumentStatus, mock.Anything).Return([]store.Item{}, nil)

	catalog, err := NewCatalogLoader(vocabularies, 5000).Load(context.Background())

	assert.Error(t, err)
	assert.NotNil(t, catalog)
	assert.Nil(t, catalog.ElementNR())
}

func TestCatalogLoad_PartialFailure(t *testing.T) {
	vocabularies := new(MockVocabularyStore)
	vocabularies.On("Fetch", mock.Anything, store.ListWorkPackages, mock.Anything).Return(nil, assert.AnError)
	vocabularies.On("Fetch", mock.Anything, store.ListPhases, mock.Anything).Return([]store.Item{
		{"id": int64(10), "title": "Design", "wp_type": "ALL-WP"},
	}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListDesignStages, mock.Anything).Return([]store.Item{}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListElements, mock.Anything).Return([]store.Item{
		{"id": int64(32), "title": "NR", "element_name_and_code": "NR"},
	}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListSubDisciplines, mock.Anything).Return([]store.Item{
		{"id": int64(41), "title": "NR", "sub_discipline": "NR"},
	}, nil)
	vocabularies.On("Fetch", mock.Anything, store.ListDocumentStatus, mock.Anything).Return([]store.Item{}, nil)

	catalog, err := NewCatalogLoader(vocabularies, 5000).Load(context.Background())

	// The failed list stays empty; the siblings still load.
	assert.Error(t, err)
	assert.Empty(t, catalog.WorkPackages)
	assert.Len(t, catalog.Phases, 1)
	assert.NotNil(t, catalog.ElementNR())
}
