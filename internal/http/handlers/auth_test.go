package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
	"github.com/Munionn/Airport-sub002/internal/service"
	"github.com/Munionn/Airport-sub002/internal/service/mocks"
)

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		mockResp       dto.AuthResponse
		mockErr        error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:           "created",
			body:           dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "s3cret-pass", FirstName: "Jane", LastName: "Doe"},
			mockResp:       dto.AuthResponse{User: models.User{ID: 1, Username: "jdoe", PasswordHash: "secret-hash"}},
			expectedStatus: http.StatusCreated,
			shouldCallMock: true,
		},
		{
			name:           "duplicate user",
			body:           dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "s3cret-pass"},
			mockErr:        svcErr(service.ErrConflict, "user with this email or username already exists"),
			expectedStatus: http.StatusConflict,
			shouldCallMock: true,
		},
		{
			name:           "validation failure",
			body:           dto.RegisterRequest{Email: "jdoe@example.com"},
			mockErr:        svcErr(service.ErrBadRequest, "username is required"),
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: true,
		},
		{
			name:           "storage failure",
			body:           dto.RegisterRequest{Username: "jdoe"},
			mockErr:        errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			shouldCallMock: true,
		},
		{
			name:           "invalid json",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockAuthService)
			router := setupTestRouter(NewAuthHandler(svc, nullLog))
			if tt.shouldCallMock {
				svc.On("Register", mock.Anything, mock.Anything).Return(tt.mockResp, tt.mockErr)
			}

			rec := doRequest(t, router, http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "secret-hash")
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection reset")
			}
			if !tt.shouldCallMock {
				svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(mocks.MockAuthService)
	router := setupTestRouter(NewAuthHandler(svc, nullLog))

	good := dto.LoginRequest{Email: "jdoe@example.com", Password: "s3cret-pass"}
	bad := dto.LoginRequest{Email: "jdoe@example.com", Password: "nope-nope"}
	svc.On("Login", mock.Anything, good).Return(dto.AuthResponse{
		User:  models.User{ID: 1, Email: good.Email, PasswordHash: "secret-hash"},
		Roles: []models.Role{{Name: models.RolePassenger}},
	}, nil)
	svc.On("Login", mock.Anything, bad).Return(dto.AuthResponse{}, svcErr(service.ErrUnauthorized, "invalid credentials"))

	rec := doRequest(t, router, http.MethodPost, "/auth/login", good)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.Contains(t, rec.Body.String(), `"roles"`)

	rec = doRequest(t, router, http.MethodPost, "/auth/login", bad)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "invalid credentials", env.Message)

	svc.AssertExpectations(t)
}

func TestAuthHandler_MethodNotAllowed(t *testing.T) {
	router := setupTestRouter(NewAuthHandler(new(mocks.MockAuthService), nullLog))

	rec := doRequest(t, router, http.MethodGet, "/auth/login", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
