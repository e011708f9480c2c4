package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/dto"
	"github.com/GlebRadaev/squadhelp/pkg/auth"
	"github.com/GlebRadaev/squadhelp/pkg/utils"
)

var card = domain.Card{Number: "4111111111111111", CVC: "123", Expiry: "09/27"}

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestPayHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)

	validBody := `{"number":"4111 1111 1111 1111","cvc":"123","expiry":"09/27","price":100,` +
		`"contests":[{"contestType":"name","title":"Coffee shop"},{"contestType":"logo","title":"Coffee logo","brandStyle":"Minimal"}]}`
	expectPay := func(err error) {
		service.EXPECT().Pay(ctx, 1, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, p domain.Payment) (string, error) {
				assert.Equal(t, card, p.Card)
				assert.True(t, decimal.NewFromInt(100).Equal(p.Price))
				assert.Equal(t, []domain.Contest{
					{ContestType: "name", Title: "Coffee shop"},
					{ContestType: "logo", Title: "Coffee logo", BrandStyle: "Minimal"},
				}, p.Contests)
				if err != nil {
					return "", err
				}
				return "0f8fad5b-d9cb-469f-a165-70867728950e", nil
			})
	}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:         "Successful payment",
			body:         validBody,
			prepareMock:  func() { expectPay(nil) },
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"number":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Card fails Luhn check",
			body:          `{"number":"4111111111111112","cvc":"123","expiry":"09/27","price":100,"contests":[{"contestType":"name","title":"x"}]}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Validation failed",
		},
		{
			name:          "Zero price",
			body:          `{"number":"4111111111111111","cvc":"123","expiry":"09/27","price":0,"contests":[{"contestType":"name","title":"x"}]}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Validation failed",
		},
		{
			name:          "No contests",
			body:          `{"number":"4111111111111111","cvc":"123","expiry":"09/27","price":100,"contests":[]}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Validation failed",
		},
		{
			name:          "Unknown contest type",
			body:          `{"number":"4111111111111111","cvc":"123","expiry":"09/27","price":100,"contests":[{"contestType":"poem","title":"x"}]}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Validation failed",
		},
		{
			name:          "Insufficient funds",
			body:          validBody,
			prepareMock:   func() { expectPay(domain.ErrInsufficientFunds) },
			expectedCode:  http.StatusPaymentRequired,
			expectedError: domain.ErrInsufficientFunds.Error(),
		},
		{
			name:          "Card not found",
			body:          validBody,
			prepareMock:   func() { expectPay(domain.ErrAccountNotFound) },
			expectedCode:  http.StatusNotFound,
			expectedError: domain.ErrAccountNotFound.Error(),
		},
		{
			name:          "Internal server error",
			body:          validBody,
			prepareMock:   func() { expectPay(errors.New("db down")) },
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/payment", bytes.NewReader([]byte(tt.body)))
			r = r.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.Pay(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestCashoutHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 2)
	validBody := `{"number":"4111111111111111","cvc":"123","expiry":"09/27","sum":50}`

	expectCashout := func(balance decimal.Decimal, err error) {
		service.EXPECT().Cashout(ctx, 2, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, c domain.Cashout) (decimal.Decimal, error) {
				assert.Equal(t, card, c.Card)
				assert.True(t, decimal.NewFromInt(50).Equal(c.Sum))
				return balance, err
			})
	}

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedBalance string
	}{
		{
			name:            "Successful cashout",
			body:            validBody,
			prepareMock:     func() { expectCashout(decimal.RequireFromString("70.5"), nil) },
			expectedCode:    http.StatusOK,
			expectedBalance: "70.5",
		},
		{
			name:         "Invalid request body",
			body:         `{"sum":"abc"`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Bad expiry",
			body:         `{"number":"4111111111111111","cvc":"123","expiry":"2027-09","sum":50}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Negative sum",
			body:         `{"number":"4111111111111111","cvc":"123","expiry":"09/27","sum":-5}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Insufficient balance",
			body:         validBody,
			prepareMock:  func() { expectCashout(decimal.Zero, domain.ErrInsufficientBalance) },
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name:         "Card not found",
			body:         validBody,
			prepareMock:  func() { expectCashout(decimal.Zero, domain.ErrAccountNotFound) },
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Internal server error",
			body:         validBody,
			prepareMock:  func() { expectCashout(decimal.Zero, errors.New("db down")) },
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/cashout", bytes.NewReader([]byte(tt.body)))
			r = r.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.Cashout(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBalance != "" {
				assert.JSONEq(t, `{"balance":`+tt.expectedBalance+`}`, w.Body.String())
			}
		})
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody string
	}{
		{
			name: "Transactions found",
			prepareMock: func() {
				service.EXPECT().GetTransactions(ctx, 1).Return([]domain.Transaction{
					{ID: 2, Amount: decimal.NewFromInt(50), OperationType: domain.OperationIncome, UserID: 1, CreatedAt: createdAt},
					{ID: 1, Amount: decimal.NewFromInt(100), OperationType: domain.OperationExpense, UserID: 1, CreatedAt: createdAt},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":2,"amount":50,"operationType":"INCOME","createdAt":"2024-05-01T10:00:00Z"},` +
				`{"id":1,"amount":100,"operationType":"EXPENSE","createdAt":"2024-05-01T10:00:00Z"}]`,
		},
		{
			name: "No transactions",
			prepareMock: func() {
				service.EXPECT().GetTransactions(ctx, 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetTransactions(ctx, 1).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/user/transactions", nil)
			r = r.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.GetTransactions(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestGetContestsHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Contests found",
			prepareMock: func() {
				service.EXPECT().GetContests(ctx, 1).Return([]domain.Contest{
					{ID: 1, OrderID: "order-1", ContestType: "name", Title: "a", Status: domain.ContestStatusActive, Priority: 1, Prize: decimal.RequireFromString("33.33"), CreatedAt: createdAt},
					{ID: 2, OrderID: "order-1", ContestType: "logo", Title: "b", Status: domain.ContestStatusPending, Priority: 2, Prize: decimal.RequireFromString("33.34"), CreatedAt: createdAt},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "No contests",
			prepareMock: func() {
				service.EXPECT().GetContests(ctx, 1).Return([]domain.Contest{}, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetContests(ctx, 1).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/user/contests", nil)
			r = r.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.GetContests(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.ContestResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				require.Len(t, body, tt.expectedLen)
				assert.Equal(t, "order-1", body[0].OrderID)
				assert.Equal(t, domain.ContestStatusActive, body[0].Status)
				assert.True(t, decimal.RequireFromString("33.34").Equal(body[1].Prize))
			}
		})
	}
}
