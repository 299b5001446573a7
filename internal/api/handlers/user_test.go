package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/takeariz/storefront/internal/api/handlers"
	appErrors "github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	"github.com/takeariz/storefront/internal/services/mocks"
	"github.com/takeariz/storefront/internal/testutils"
)

func TestRegisterHandler(t *testing.T) {
	t.Run("Success - User Registered", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		reqBody := models.RegisterRequest{
			Name:     "Dewi Lestari",
			Email:    "dewi@example.com",
			Password: "hunter2-but-longer",
		}
		created := &models.User{ID: uuid.New(), Name: reqBody.Name, Email: reqBody.Email, Role: models.RoleUser}

		mockUserService.On("Register", mock.Anything, mock.AnythingOfType("*models.RegisterRequest")).
			Return(created, nil).Once()

		bodyBytes, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/register", bytes.NewReader(bodyBytes), nil)
		rr := httptest.NewRecorder()

		userHandler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeAPIResponse(t, rr)
		assert.True(t, resp.Success)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		bodyBytes, _ := json.Marshal(models.RegisterRequest{
			Name:     "Dewi Lestari",
			Email:    "not-an-email",
			Password: "hunter2-but-longer",
		})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/register", bytes.NewReader(bodyBytes), nil)
		rr := httptest.NewRecorder()

		userHandler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Register", mock.Anything, mock.AnythingOfType("*models.RegisterRequest")).
			Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		bodyBytes, _ := json.Marshal(models.RegisterRequest{
			Name:     "Dewi Lestari",
			Email:    "dewi@example.com",
			Password: "hunter2-but-longer",
		})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/register", bytes.NewReader(bodyBytes), nil)
		rr := httptest.NewRecorder()

		userHandler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		resp := decodeAPIResponse(t, rr)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, resp.Error.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("Success - Token Issued", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: true, Token: "signed-token", ExpiresIn: 86400}, nil).Once()

		bodyBytes, _ := json.Marshal(models.LoginRequest{Email: "dewi@example.com", Password: "hunter2-but-longer"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/login", bytes.NewReader(bodyBytes), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeAPIResponse(t, rr)
		assert.True(t, resp.Success)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Password", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		bodyBytes, _ := json.Marshal(models.LoginRequest{Email: "dewi@example.com"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/login", bytes.NewReader(bodyBytes), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockUserService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestProfileHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Profile Returned", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Name: "Dewi Lestari"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/users/me", nil, userID, models.RoleUser, nil)
		rr := httptest.NewRecorder()

		userHandler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - No Claims", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/users/me", nil, nil)
		rr := httptest.NewRecorder()

		userHandler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockUserService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})
}
