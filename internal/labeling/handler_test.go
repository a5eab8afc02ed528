package labeling

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"meeting-summaries-backend/internal/errors"
	"meeting-summaries-backend/internal/middleware"
	"meeting-summaries-backend/internal/store"
)

// MockLabelingService is a mock implementation of the Service interface
type MockLabelingService struct {
	mock.Mock
}

func (m *MockLabelingService) GetCatalog(ctx context.Context) (*Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Catalog), args.Error(1)
}

func (m *MockLabelingService) OptionsFor(ctx context.Context, field Field, row Row) ([]Option, error) {
	args := m.Called(ctx, field, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Option), args.Error(1)
}

func (m *MockLabelingService) BuildSubmission(ctx context.Context, rows []Row, common CommonFields) (*Submission, error) {
	args := m.Called(ctx, rows, common)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Submission), args.Error(1)
}

func (m *MockLabelingService) AddVocabularyEntry(ctx context.Context, listName string, fields store.Item) (uint64, error) {
	args := m.Called(ctx, listName, fields)
	return args.Get(0).(uint64), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestShowCatalog_Success(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	mockService.On("GetCatalog", mock.Anything).Return(testCatalog(), nil)

	router.GET("/labeling/catalog", handler.ShowCatalog)

	req := httptest.NewRequest("GET", "/labeling/catalog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response Catalog
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.WorkPackages, 5)
	mockService.AssertExpectations(t)
}

func TestShowOptions_Success(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	options := []Option{{ID: 10, Label: "Tender"}, {ID: 11, Label: "Design"}}
	mockService.On("OptionsFor", mock.Anything, FieldPhase, mock.Anything).Return(options, nil)

	router.POST("/labeling/options", handler.ShowOptions)

	w := postJSON(t, router, "/labeling/options", OptionsRequest{
		Field: FieldPhase,
		Row:   Row{ID: 1, WorkPackage: &WorkPackage{ID: 1, Title: "Wp1"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Options []Option `json:"options"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, options, response.Options)
	mockService.AssertExpectations(t)
}

func TestShowOptions_MissingField(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.POST("/labeling/options", handler.ShowOptions)

	w := postJSON(t, router, "/labeling/options", gin.H{"row": Row{ID: 1}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetRowField_CascadeReset(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.POST("/labeling/rows/set-field", handler.SetRowField)

	rows := []Row{fullRow(t)}
	w := postJSON(t, router, "/labeling/rows/set-field", SetFieldRequest{
		Rows:  rows,
		RowID: 1,
		Field: FieldWorkPackage,
		Value: json.RawMessage(`{"id":2,"title":"Wp2.1"}`),
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Rows []Row `json:"rows"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Wp2.1", response.Rows[0].WorkPackage.Title)
	assert.Nil(t, response.Rows[0].Phase)
	assert.Nil(t, response.Rows[0].Element)
}

func TestSetRowField_UnknownRow(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.POST("/labeling/rows/set-field", handler.SetRowField)

	w := postJSON(t, router, "/labeling/rows/set-field", SetFieldRequest{
		Rows:  NewRows(),
		RowID: 9,
		Field: FieldPhase,
		Value: json.RawMessage(`{"id":10,"title":"Tender"}`),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddRowEndpoint(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.POST("/labeling/rows/add", handler.AddRow)

	w := postJSON(t, router, "/labeling/rows/add", RowsRequest{Rows: NewRows()})

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Rows []Row `json:"rows"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Rows, 2)
	assert.Equal(t, 2, response.Rows[1].ID)
}

func TestDeleteRowEndpoint_SingleRowNoOp(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.POST("/labeling/rows/delete", handler.DeleteRow)

	w := postJSON(t, router, "/labeling/rows/delete", DeleteRowRequest{Rows: NewRows(), RowID: 1})

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Rows []Row `json:"rows"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Rows, 1)
}

func TestValidateEndpoint(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.POST("/labeling/validate", handler.Validate)

	w := postJSON(t, router, "/labeling/validate", RowsRequest{Rows: []Row{fullRow(t), {ID: 2}}})

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Valid bool          `json:"valid"`
		Rows  []RowValidity `json:"rows"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Valid)
	assert.True(t, response.Rows[0].Valid)
	assert.False(t, response.Rows[1].Valid)
}

func TestPreview_IncompleteRows(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	mockService.On("BuildSubmission", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.UnprocessableEntity("One or more classification rows are incomplete", nil))

	router.POST("/labeling/preview", handler.Preview)

	w := postJSON(t, router, "/labeling/preview", PreviewRequest{Rows: NewRows()})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockService.AssertExpectations(t)
}

func TestPreview_Success(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	submission := &Submission{
		LibraryPath: "Wp1new/Design/Detailed Design/E1 - Bridge/Structures",
		LibraryName: "Wp1/Design/Detailed Design/E1 - Bridge/Structures",
	}
	mockService.On("BuildSubmission", mock.Anything, mock.Anything, mock.Anything).Return(submission, nil)

	router.POST("/labeling/preview", handler.Preview)

	w := postJSON(t, router, "/labeling/preview", PreviewRequest{Rows: []Row{fullRow(t)}})

	assert.Equal(t, http.StatusOK, w.Code)
	var response Submission
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, submission.LibraryPath, response.LibraryPath)
	mockService.AssertExpectations(t)
}

func TestAddVocabularyEntryHandler_Success(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	mockService.On("AddVocabularyEntry", mock.Anything, store.ListWorkPackages, mock.Anything).
		Return(uint64(12), nil)

	router.POST("/internal/vocabularies/:list", handler.AddVocabularyEntry)

	w := postJSON(t, router, "/internal/vocabularies/"+store.ListWorkPackages, AddVocabularyEntryRequest{
		Fields: store.Item{"title": "Wp8"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response struct {
		ID uint64 `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, uint64(12), response.ID)
	mockService.AssertExpectations(t)
}

func TestAddVocabularyEntryHandler_UnknownList(t *testing.T) {
	mockService := new(MockLabelingService)
	handler := NewHandler(mockService)
	router := setupRouter()

	mockService.On("AddVocabularyEntry", mock.Anything, "bogus", mock.Anything).
		Return(uint64(0), errors.NotFound(`Unknown vocabulary list "bogus"`, nil))

	router.POST("/internal/vocabularies/:list", handler.AddVocabularyEntry)

	w := postJSON(t, router, "/internal/vocabularies/bogus", AddVocabularyEntryRequest{
		Fields: store.Item{"title": "x"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}
