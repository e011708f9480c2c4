package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/dto"
	"github.com/GlebRadaev/squadhelp/pkg/auth"
	"github.com/GlebRadaev/squadhelp/pkg/utils"
	"github.com/GlebRadaev/squadhelp/pkg/validate"
)

//go:generate mockgen -source=payment.go -destination=payment_mock.go -package=payment
type Service interface {
	Pay(ctx context.Context, userID int, payment domain.Payment) (string, error)
	Cashout(ctx context.Context, userID int, cashout domain.Cashout) (decimal.Decimal, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error)
	GetContests(ctx context.Context, userID int) ([]domain.Contest, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Pay godoc
//
//	@Summary		Pay for an order of contests
//	@Description	Charges the card with the order price, splits the prize across the contests and opens them.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PaymentRequestDTO	true	"Payment request payload"
//	@Success		200		{string}	string					"Order paid"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Not enough money on the card"
//	@Failure		403		{object}	utils.Response			"Only customers can pay"
//	@Failure		404		{object}	utils.Response			"Card not found"
//	@Failure		422		{object}	utils.Response			"Validation failed"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/payment [post]
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	contests := make([]domain.Contest, len(req.Contests))
	for i, c := range req.Contests {
		contests[i] = domain.Contest{
			ContestType:    c.ContestType,
			Title:          c.Title,
			Industry:       c.Industry,
			FocusOfWork:    c.FocusOfWork,
			TargetCustomer: c.TargetCustomer,
			StyleName:      c.StyleName,
			NameVenture:    c.NameVenture,
			TypeOfName:     c.TypeOfName,
			TypeOfTagline:  c.TypeOfTagline,
			BrandStyle:     c.BrandStyle,
		}
	}

	_, err := h.paymentService.Pay(r.Context(), userID, domain.Payment{
		Card:     domain.NewCard(req.Number, req.CVC, req.Expiry),
		Price:    req.Price,
		Contests: contests,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Cashout godoc
//
//	@Summary		Withdraw earnings to a card
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CashoutRequestDTO	true	"Cashout request payload"
//	@Success		200		{object}	dto.CashoutResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		403		{object}	utils.Response	"Only creators can cash out"
//	@Failure		404		{object}	utils.Response	"Card not found"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/cashout [post]
func (h *PaymentHandler) Cashout(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CashoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	balance, err := h.paymentService.Cashout(r.Context(), userID, domain.Cashout{
		Card: domain.NewCard(req.Number, req.CVC, req.Expiry),
		Sum:  req.Sum,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CashoutResponseDTO{Balance: balance})
}

// GetTransactions godoc
//
//	@Summary		Get money movement history
//	@Description	EXPENSE and INCOME rows of the authenticated user, newest first
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Success		204	{object}	utils.Response	"No transactions"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *PaymentHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	transactions, err := h.paymentService.GetTransactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if len(transactions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(transactions))
	for i, tr := range transactions {
		response[i] = dto.TransactionResponseDTO{
			ID:            tr.ID,
			Amount:        tr.Amount,
			OperationType: tr.OperationType,
			CreatedAt:     tr.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetContests godoc
//
//	@Summary		Get contests of the authenticated user
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ContestResponseDTO
//	@Success		204	{object}	utils.Response	"No contests"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/contests [get]
func (h *PaymentHandler) GetContests(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	contests, err := h.paymentService.GetContests(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch contests")
		return
	}
	if len(contests) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Contests not found")
		return
	}

	response := make([]dto.ContestResponseDTO, len(contests))
	for i, c := range contests {
		response[i] = dto.ContestResponseDTO{
			ID:          c.ID,
			OrderID:     c.OrderID,
			ContestType: c.ContestType,
			Title:       c.Title,
			Status:      c.Status,
			Priority:    c.Priority,
			Prize:       c.Prize,
			CreatedAt:   c.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, domain.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrEmptyOrder):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
