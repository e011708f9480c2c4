package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
	"github.com/GlebRadaev/squadhelp/internal/repo"
	"github.com/GlebRadaev/squadhelp/internal/service"
	"github.com/GlebRadaev/squadhelp/internal/service/ratingservice"
	"github.com/GlebRadaev/squadhelp/internal/service/userservice"
	"github.com/GlebRadaev/squadhelp/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	jwtService := auth.NewMockJWTServiceInterface(ctrl)
	services := service.New(repo.New(mockDB, pg.NewMockTXManager(ctrl)), pg.NewMockTXManager(ctrl), service.Deps{
		JWTService: jwtService,
		TokenTTL:   time.Hour,
		Publisher:  ratingservice.NewMockPublisher(ctrl),
		Files:      userservice.NewMockFileStore(ctrl),
	})

	h := New(services, jwtService)
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.AuthHandler)
	assert.NotNil(t, h.UserHandler)
	assert.NotNil(t, h.PaymentHandler)
	assert.NotNil(t, h.RatingHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockUserHandler := NewMockUserHandler(ctrl)
	mockPaymentHandler := NewMockPaymentHandler(ctrl)
	mockRatingHandler := NewMockRatingHandler(ctrl)
	mockJWT := auth.NewMockJWTServiceInterface(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().GetProfile(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Pay(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Cashout(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().GetContests(gomock.Any(), gomock.Any()).AnyTimes()
	mockRatingHandler.EXPECT().ChangeMark(gomock.Any(), gomock.Any()).AnyTimes()

	mockJWT.EXPECT().ValidateToken("customer-token").
		Return(&auth.Claims{Profile: auth.Profile{UserID: 1, Role: domain.RoleCustomer}}, nil).AnyTimes()
	mockJWT.EXPECT().ValidateToken("creator-token").
		Return(&auth.Claims{Profile: auth.Profile{UserID: 2, Role: domain.RoleCreator}}, nil).AnyTimes()
	mockJWT.EXPECT().ValidateToken("broken-token").
		Return(nil, errors.New("invalid token")).AnyTimes()

	h := &Handlers{
		AuthHandler:    mockAuthHandler,
		UserHandler:    mockUserHandler,
		PaymentHandler: mockPaymentHandler,
		RatingHandler:  mockRatingHandler,
		jwtService:     mockJWT,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{http.MethodPost, "/api/user/register", "", http.StatusOK},
		{http.MethodPost, "/api/user/login", "", http.StatusOK},

		{http.MethodGet, "/api/user/profile", "", http.StatusUnauthorized},
		{http.MethodPatch, "/api/user/profile", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/user/transactions", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/user/contests", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/user/payment", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/user/cashout", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/user/mark", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/user/profile", "broken-token", http.StatusUnauthorized},

		{http.MethodGet, "/api/user/profile", "customer-token", http.StatusOK},
		{http.MethodPatch, "/api/user/profile", "creator-token", http.StatusOK},
		{http.MethodGet, "/api/user/transactions", "creator-token", http.StatusOK},
		{http.MethodGet, "/api/user/contests", "customer-token", http.StatusOK},

		{http.MethodPost, "/api/user/payment", "customer-token", http.StatusOK},
		{http.MethodPost, "/api/user/payment", "creator-token", http.StatusForbidden},
		{http.MethodPost, "/api/user/mark", "customer-token", http.StatusOK},
		{http.MethodPost, "/api/user/mark", "creator-token", http.StatusForbidden},
		{http.MethodPost, "/api/user/cashout", "creator-token", http.StatusOK},
		{http.MethodPost, "/api/user/cashout", "customer-token", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url+" "+tt.token, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
