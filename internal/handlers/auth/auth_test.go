package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/dto"
	"github.com/GlebRadaev/squadhelp/pkg/utils"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	validBody := `{"firstName":"John","lastName":"Doe","displayName":"johnny","email":"john@example.com","password":"secret123","role":"customer"}`
	registration := domain.Registration{
		FirstName:   "John",
		LastName:    "Doe",
		DisplayName: "johnny",
		Email:       "john@example.com",
		Password:    "secret123",
		Role:        domain.RoleCustomer,
	}
	user := &domain.User{ID: 1, Email: "john@example.com", Role: domain.RoleCustomer}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedToken string
	}{
		{
			name: "Successful registration",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), registration).Return(user, nil)
				service.EXPECT().IssueToken(context.Background(), user).Return("some-jwt-token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedToken: "some-jwt-token",
		},
		{
			name: "Email already taken",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), registration).Return(nil, domain.ErrEmailTaken)
			},
			expectedCode:  http.StatusConflict,
			expectedError: domain.ErrEmailTaken.Error(),
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Unknown role",
			body:          `{"firstName":"John","lastName":"Doe","displayName":"johnny","email":"john@example.com","password":"secret123","role":"admin"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Validation failed",
		},
		{
			name:          "Malformed email",
			body:          `{"firstName":"John","lastName":"Doe","displayName":"johnny","email":"john","password":"secret123","role":"creator"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Validation failed",
		},
		{
			name: "Repository failure",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), registration).Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name: "Error generating token",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), registration).Return(user, nil)
				service.EXPECT().IssueToken(context.Background(), user).Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
			if tt.expectedToken != "" {
				var resp dto.TokenResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, resp.Token)
				assert.Equal(t, "Bearer "+tt.expectedToken, rr.Header().Get("Authorization"))
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	user := &domain.User{ID: 1, Email: "john@example.com"}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedToken string
	}{
		{
			name: "Successful login",
			body: `{"email":"john@example.com","password":"secret123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "john@example.com", "secret123").
					Return(user, nil)
				service.EXPECT().
					IssueToken(context.Background(), user).
					Return("some-jwt-token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedToken: "some-jwt-token",
		},
		{
			name: "Invalid credentials",
			body: `{"email":"john@example.com","password":"wrongpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "john@example.com", "wrongpassword").
					Return(nil, domain.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
		{
			name: "Repository failure",
			body: `{"email":"john@example.com","password":"secret123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "john@example.com", "secret123").
					Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing password",
			body:          `{"email":"john@example.com"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"email":"john@example.com","password":"secret123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "john@example.com", "secret123").
					Return(user, nil)
				service.EXPECT().
					IssueToken(context.Background(), user).
					Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
			if tt.expectedToken != "" {
				var resp dto.TokenResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, resp.Token)
			}
		})
	}
}
