package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisLib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"meeting-summaries-backend/internal/config"
	"meeting-summaries-backend/internal/errors"
	"meeting-summaries-backend/internal/middleware"
	"meeting-summaries-backend/redis"
)

var miniRedis *miniredis.Miniredis

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, contact *Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockService) Login(ctx context.Context, email, password string) (*Contact, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Contact), args.Error(1)
}

func (m *MockService) GetContactByID(ctx context.Context, id uint64) (*Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Contact), args.Error(1)
}

func (m *MockService) SearchContacts(ctx context.Context, query string) ([]SafeContact, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return []SafeContact{}, args.Error(1)
	}
	return args.Get(0).([]SafeContact), args.Error(1)
}

func (m *MockService) ResolveEmails(ctx context.Context, names []string) (string, error) {
	args := m.Called(ctx, names)
	return args.String(0), args.Error(1)
}

func (m *MockService) EnsureCompanies(ctx context.Context, companies []string) error {
	args := m.Called(ctx, companies)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	if config.AppConfig.JWTSecret == "" {
		config.AppConfig.JWTSecret = "test-secret"
	}

	// Initialize miniredis for testing if not already done
	if miniRedis == nil {
		var err error
		miniRedis, err = miniredis.Run()
		if err != nil {
			panic(err)
		}
	}

	if redis.RedisClient == nil {
		redis.RedisClient = redisLib.NewClient(&redisLib.Options{
			Addr: miniRedis.Addr(),
		})
	}

	return router
}

func TestRegister_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	mockService.On("Register", mock.Anything, mock.MatchedBy(func(contact *Contact) bool {
		return contact.FullName == "Dana Levi" &&
			contact.Email == "dana@example.com" &&
			contact.Company == "Acme"
	})).Return(nil).Run(func(args mock.Arguments) {
		contact := args.Get(1).(*Contact)
		contact.ID = 1
		contact.IsActive = true
	})

	router.POST("/register", handler.Register)

	payload := FormRegister{
		FullName: "Dana Levi",
		Email:    "dana@example.com",
		Company:  "Acme",
		Password: "password123",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotNil(t, response["contact"])
	mockService.AssertExpectations(t)
}

func TestRegister_InvalidEmail(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.POST("/register", handler.Register)

	payload := FormRegister{
		FullName: "Dana Levi",
		Email:    "not-an-email",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_SingleWordName(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	mockService.On("Register", mock.Anything, mock.Anything).
		Return(errors.UnprocessableEntity("Full name must include first and last name", nil))

	router.POST("/register", handler.Register)

	payload := FormRegister{
		FullName: "Dana",
		Email:    "dana@example.com",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockService.AssertExpectations(t)
}

func TestRegister_Duplicate(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	mockService.On("Register", mock.Anything, mock.Anything).
		Return(errors.Conflict("Contact already registered", nil))

	router.POST("/register", handler.Register)

	payload := FormRegister{
		FullName: "Dana Levi",
		Email:    "dana@example.com",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	contact := &Contact{
		ID:       1,
		FullName: "Dana Levi",
		Email:    "dana@example.com",
		IsActive: true,
	}
	mockService.On("Login", mock.Anything, "dana@example.com", "password123").Return(contact, nil)

	router.POST("/login", handler.Login)

	payload := FormLogin{
		Email:    "dana@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotNil(t, response["token"])
	assert.NotNil(t, response["contact"])
	mockService.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	mockService.On("Login", mock.Anything, "dana@example.com", "wrong").
		Return(nil, errors.Unauthorized("Wrong password", nil))

	router.POST("/login", handler.Login)

	payload := FormLogin{
		Email:    "dana@example.com",
		Password: "wrong",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertExpectations(t)
}

func TestGetProfile_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	contact := &Contact{
		ID:       1,
		FullName: "Dana Levi",
		Email:    "dana@example.com",
		IsActive: true,
	}
	mockService.On("GetContactByID", mock.Anything, uint64(1)).Return(contact, nil)

	router.GET("/profile", func(c *gin.Context) {
		c.Set("contact_id", uint64(1))
		handler.GetProfile(c)
	})

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Contact SafeContact `json:"contact"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Dana Levi", response.Contact.FullName)
	mockService.AssertExpectations(t)
}

func TestSearchContacts_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	results := []SafeContact{
		{ID: 2, FullName: "Noa Bar", Email: "noa@example.com"},
	}
	mockService.On("SearchContacts", mock.Anything, "noa").Return(results, nil)

	router.GET("/contacts", handler.SearchContacts)

	req := httptest.NewRequest("GET", "/contacts?query=noa", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Contacts []SafeContact `json:"contacts"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Contacts, 1)
	mockService.AssertExpectations(t)
}

func TestSearchContacts_NoQuery(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.GET("/contacts", handler.SearchContacts)

	req := httptest.NewRequest("GET", "/contacts", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Contacts []SafeContact `json:"contacts"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Empty(t, response.Contacts)
}

func TestShowContact_InvalidID(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	router.GET("/contacts/:id", handler.ShowContact)

	req := httptest.NewRequest("GET", "/contacts/abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
