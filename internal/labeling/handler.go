package labeling

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-summaries-backend/internal/errors"
	"meeting-summaries-backend/internal/store"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ShowCatalog returns the deduplicated vocabulary catalog.
func (h *Handler) ShowCatalog(c *gin.Context) {
	catalog, err := h.service.GetCatalog(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

type OptionsRequest struct {
	Field Field `json:"field" binding:"required"`
	Row   Row   `json:"row"`
}

// ShowOptions computes the legal option set for one selector of a row.
func (h *Handler) ShowOptions(c *gin.Context) {
	var req OptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	options, err := h.service.OptionsFor(c.Request.Context(), req.Field, req.Row)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}

type SetFieldRequest struct {
	Rows  []Row           `json:"rows" binding:"required"`
	RowID int             `json:"rowId" binding:"required"`
	Field Field           `json:"field" binding:"required"`
	Value json.RawMessage `json:"value"`
}

// SetRowField applies one selector change, with the cascade reset when the
// work package changes.
func (h *Handler) SetRowField(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	rows, err := ApplyFieldChange(req.Rows, req.RowID, req.Field, req.Value)
	if err != nil {
		c.Error(errors.BadRequest(err.Error(), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

type RowsRequest struct {
	Rows []Row `json:"rows" binding:"required"`
}

// AddRow appends an empty classification row.
func (h *Handler) AddRow(c *gin.Context) {
	var req RowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": AddRow(req.Rows)})
}

type DeleteRowRequest struct {
	Rows  []Row `json:"rows" binding:"required"`
	RowID int   `json:"rowId" binding:"required"`
}

// DeleteRow removes a row; a single-row list is returned unchanged.
func (h *Handler) DeleteRow(c *gin.Context) {
	var req DeleteRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": DeleteRow(req.Rows, req.RowID)})
}

type RowValidity struct {
	ID    int  `json:"id"`
	Valid bool `json:"valid"`
}

// Validate reports per-row and overall completeness; an incomplete row keeps
// the save action inert, it is never an exception.
func (h *Handler) Validate(c *gin.Context) {
	var req RowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	perRow := make([]RowValidity, 0, len(req.Rows))
	for _, row := range req.Rows {
		perRow = append(perRow, RowValidity{ID: row.ID, Valid: IsRowValid(row)})
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": AllRowsValid(req.Rows),
		"rows":  perRow,
	})
}

type PreviewRequest struct {
	Rows   []Row        `json:"rows" binding:"required"`
	Common CommonFields `json:"common"`
}

// Preview builds the full submission (decorated rows, paths, payloads and
// the merged record payload) without writing anything.
func (h *Handler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	submission, err := h.service.BuildSubmission(c.Request.Context(), req.Rows, req.Common)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

type AddVocabularyEntryRequest struct {
	Fields store.Item `json:"fields" binding:"required"`
}

// AddVocabularyEntry grows a controlled vocabulary list.
func (h *Handler) AddVocabularyEntry(c *gin.Context) {
	listName := c.Param("list")

	var req AddVocabularyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	id, err := h.service.AddVocabularyEntry(c.Request.Context(), listName, req.Fields)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}
