package labeling

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"meeting-summaries-backend/internal/errors"
	"meeting-summaries-backend/internal/store"
	"meeting-summaries-backend/redis"
)

// SavedRow is a row decorated for saving: stamped with a submission uid, the
// shared common fields, the derived paths and the built payload.
type SavedRow struct {
	Row
	UID                       string          `json:"uid"`
	Rev                       int             `json:"rev"`
	RevisionNo                int             `json:"revisionNo"`
	Authority                 string          `json:"authority,omitempty"`
	DocumentStatus            *DocumentStatus `json:"documentStatus,omitempty"`
	AuthorID                  *uint64         `json:"authorId,omitempty"`
	PhaseTitle                string          `json:"phaseTitle,omitempty"`
	DocumentLibraryName       string          `json:"documentLibraryName"`
	DocumentLibraryNameMapped string          `json:"documentLibraryNameMapped"`
	Path                      RowPath         `json:"path"`
	Payload                   Payload         `json:"jsonPayload"`
}

// Submission is the finalized artifact handed to the host form: every row
// enriched, plus the consolidated merged payload. Built once at submit time
// and never mutated afterward.
type Submission struct {
	Rows        []SavedRow       `json:"rows"`
	Merged      MergedSubmission `json:"merged"`
	LibraryPath string           `json:"libraryPath"`
	LibraryName string           `json:"libraryName"`
}

type Service interface {
	GetCatalog(ctx context.Context) (*Catalog, error)
	OptionsFor(ctx context.Context, field Field, row Row) ([]Option, error)
	BuildSubmission(ctx context.Context, rows []Row, common CommonFields) (*Submission, error)
	AddVocabularyEntry(ctx context.Context, listName string, fields store.Item) (uint64, error)
}

type DefaultService struct {
	loader     *CatalogLoader
	records    store.RecordStore
	cache      *redis.Cache
	siteRoot   string
	catalogTTL time.Duration
}

func NewService(
	loader *CatalogLoader,
	records store.RecordStore,
	cache *redis.Cache,
	siteRoot string,
	catalogTTL time.Duration,
) Service {
	return &DefaultService{
		loader:     loader,
		records:    records,
		cache:      cache,
		siteRoot:   siteRoot,
		catalogTTL: catalogTTL,
	}
}

const catalogVersionKey = "labeling:catalog:version"

// GetCatalog returns the cached catalog, loading it on a cache miss. A load
// failure is logged and yields the partially populated catalog: downstream
// cascade filters then naturally offer no options for the missing lists.
func (s *DefaultService) GetCatalog(ctx context.Context) (*Catalog, error) {
	v := s.cache.GetVersion(ctx, catalogVersionKey)
	cacheKey := fmt.Sprintf("labeling:catalog:v:%d", v)

	var cached Catalog
	found, _ := s.cache.Get(ctx, cacheKey, &cached)
	if found {
		return &cached, nil
	}

	catalog, err := s.loader.Load(ctx)
	if err != nil {
		log.Printf("[CATALOG] load error: %v", err)
		return catalog, nil
	}

	go s.cache.Set(context.Background(), cacheKey, catalog, s.catalogTTL)

	return catalog, nil
}

func (s *DefaultService) OptionsFor(ctx context.Context, field Field, row Row) ([]Option, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	options, err := NewCascadeFilter(catalog).OptionsFor(field, row)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	return options, nil
}

// BuildSubmission validates every row, then derives paths and payloads per
// row and merges them into the consolidated record payload. Pure except for
// the catalog read; it writes nothing.
func (s *DefaultService) BuildSubmission(ctx context.Context, rows []Row, common CommonFields) (*Submission, error) {
	if !AllRowsValid(rows) {
		return nil, errors.UnprocessableEntity("One or more classification rows are incomplete", nil)
	}

	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	common = NormalizeCommon(common)

	pathBuilder := NewPathBuilder(s.siteRoot)
	payloadBuilder := NewPayloadBuilder(catalog)

	savedRows := make([]SavedRow, 0, len(rows))
	submissions := make([]RowSubmission, 0, len(rows))

	for _, row := range rows {
		// The NR sentinel also lands on the decorated row, so the host form
		// sees exactly what the payload references.
		decorated := row
		if decorated.Element == nil && HasElements(row.WorkPackage.Title) {
			decorated.Element = catalog.ElementNR()
		}
		if decorated.SubDiscipline == nil && HasSubDisciplines(row.WorkPackage.Title) {
			decorated.SubDiscipline = catalog.SubDisciplineNR()
		}

		path, err := pathBuilder.BuildPath(decorated)
		if err != nil {
			return nil, errors.UnprocessableEntity(err.Error(), err)
		}

		payload, err := payloadBuilder.BuildPayload(row, common)
		if err != nil {
			return nil, errors.UnprocessableEntity(err.Error(), err)
		}

		container, _ := MappedContainer(row.WorkPackage.Title)

		phaseTitle := ""
		if row.Phase != nil {
			phaseTitle = row.Phase.Title
		}

		savedRows = append(savedRows, SavedRow{
			Row:                       decorated,
			UID:                       uuid.NewString(),
			Rev:                       common.Rev,
			RevisionNo:                common.RevisionNo,
			Authority:                 common.Authority,
			DocumentStatus:            common.DocumentStatus,
			AuthorID:                  common.AuthorID,
			PhaseTitle:                phaseTitle,
			DocumentLibraryName:       row.WorkPackage.Title,
			DocumentLibraryNameMapped: container,
			Path:                      path,
			Payload:                   payload,
		})
		submissions = append(submissions, RowSubmission{
			Payload:     payload,
			LibraryPath: path.LibraryPath,
		})
	}

	merged, err := Merge(submissions)
	if err != nil {
		return nil, err
	}

	return &Submission{
		Rows:        savedRows,
		Merged:      merged,
		LibraryPath: savedRows[0].Path.LibraryPath,
		LibraryName: savedRows[0].Path.LibraryName,
	}, nil
}

// AddVocabularyEntry grows a vocabulary list and bumps the catalog cache
// version so the next read sees the new entry.
func (s *DefaultService) AddVocabularyEntry(ctx context.Context, listName string, fields store.Item) (uint64, error) {
	switch listName {
	case store.ListWorkPackages, store.ListPhases, store.ListDesignStages,
		store.ListElements, store.ListSubDisciplines, store.ListDocumentStatus:
	default:
		return 0, errors.NotFound(fmt.Sprintf("Unknown vocabulary list %q", listName), nil)
	}

	if listName == store.ListWorkPackages {
		if title, ok := fields["title"].(string); ok && contains(excludedCatalogWorkPackages, title) {
			return 0, errors.UnprocessableEntity(fmt.Sprintf("%q is not an addable work package", title), nil)
		}
	}

	id, err := s.records.Add(ctx, listName, fields)
	if err != nil {
		return 0, err
	}

	s.cache.IncrementVersion(ctx, catalogVersionKey)
	return id, nil
}
