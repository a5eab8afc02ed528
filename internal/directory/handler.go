package directory

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"meeting-summaries-backend/auth"
	"meeting-summaries-backend/internal/errors"
	"meeting-summaries-backend/redis"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type FormRegister struct {
	FullName string `json:"fullName" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Company  string `json:"company"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

func (h *Handler) Register(c *gin.Context) {
	var form FormRegister
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	contact := &Contact{
		FullName: form.FullName,
		Email:    form.Email,
		Company:  form.Company,
		Password: form.Password,
	}

	if err := h.service.Register(c.Request.Context(), contact); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contact": contact.ToSafeContact()})
}

type FormLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var form FormLogin
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	contact, err := h.service.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		c.Error(err)
		return
	}

	token, err := auth.GenerateJWT(contact.ID)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}

	// register the session so logout can revoke it
	if redis.RedisClient != nil {
		redis.RedisClient.Set(redis.Ctx, token, contact.ID, 3*24*time.Hour)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"contact": contact.ToSafeContact(),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Get("jwt_token")
	if redis.RedisClient != nil {
		redis.RedisClient.Del(redis.Ctx, token.(string))
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetProfile(c *gin.Context) {
	contactID, _ := c.Get("contact_id")

	contact, err := h.service.GetContactByID(c.Request.Context(), contactID.(uint64))
	if err != nil {
		c.Error(errors.NotFound("Contact not found", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact.ToSafeContact()})
}

// SearchContacts backs the name->id author picker.
func (h *Handler) SearchContacts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"contacts": []SafeContact{}})
		return
	}

	contacts, err := h.service.SearchContacts(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// ShowContact resolves a single contact by id.
func (h *Handler) ShowContact(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.BadRequest("Invalid contact id", err))
		return
	}

	contact, err := h.service.GetContactByID(c.Request.Context(), id)
	if err != nil {
		c.Error(errors.NotFound("Contact not found", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact.ToSafeContact()})
}
