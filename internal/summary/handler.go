package summary

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meeting-summaries-backend/internal/errors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /summaries
func (h *Handler) Submit(c *gin.Context) {
	var form Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid request body", err))
		return
	}

	result, err := h.service.Submit(c.Request.Context(), &form)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"summary": result})
}

// Show handles GET /summaries/:id
func (h *Handler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.BadRequest("Invalid summary id", err))
		return
	}

	stored, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": stored})
}

// Update handles PUT /summaries/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.BadRequest("Invalid summary id", err))
		return
	}

	var form Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid request body", err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, &form)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": result})
}
