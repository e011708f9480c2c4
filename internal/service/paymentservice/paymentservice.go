package paymentservice

//go:generate mockgen -source=paymentservice.go -destination=paymentservice_mock.go -package=paymentservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
)

const instrumentationName = "github.com/GlebRadaev/squadhelp/internal/service/paymentservice"

type AccountRepo interface {
	Transfer(ctx context.Context, from, to domain.Card, amount decimal.Decimal) error
	Payout(ctx context.Context, from, to domain.Card, amount decimal.Decimal) error
}

type UserRepo interface {
	WithdrawBalance(ctx context.Context, userID int, sum decimal.Decimal) (decimal.Decimal, error)
}

type ContestRepo interface {
	CreateBatch(ctx context.Context, contests []domain.Contest) ([]domain.Contest, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Contest, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, trx *domain.Transaction) (*domain.Transaction, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type Service struct {
	txManager       pg.TXManager
	accountRepo     AccountRepo
	userRepo        UserRepo
	contestRepo     ContestRepo
	transactionRepo TransactionRepo
	reserve         domain.Card

	newOrderID func() string
	now        func() time.Time

	tracer         trace.Tracer
	paymentCounter metric.Int64Counter
	cashoutCounter metric.Int64Counter
}

func New(
	txManager pg.TXManager,
	accountRepo AccountRepo,
	userRepo UserRepo,
	contestRepo ContestRepo,
	transactionRepo TransactionRepo,
	reserve domain.Card,
) *Service {
	meter := otel.Meter(instrumentationName)
	paymentCounter, err := meter.Int64Counter("squadhelp.payments", metric.WithDescription("Paid orders"))
	if err != nil {
		zap.L().Error("can't create payments counter", zap.Error(err))
	}
	cashoutCounter, err := meter.Int64Counter("squadhelp.cashouts", metric.WithDescription("Completed cashouts"))
	if err != nil {
		zap.L().Error("can't create cashouts counter", zap.Error(err))
	}

	return &Service{
		txManager:       txManager,
		accountRepo:     accountRepo,
		userRepo:        userRepo,
		contestRepo:     contestRepo,
		transactionRepo: transactionRepo,
		reserve:         reserve,
		newOrderID:      uuid.NewString,
		now:             time.Now,
		tracer:          otel.Tracer(instrumentationName),
		paymentCounter:  paymentCounter,
		cashoutCounter:  cashoutCounter,
	}
}

// SplitPrize divides price between n contests in whole cents. Every contest but the last gets
// floor(price*100/n) cents, the last one gets the rest, so the shares always add up to price.
func SplitPrize(price decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	cents := price.Shift(domain.MoneyScale)
	count := decimal.NewFromInt(int64(n))
	share, _ := cents.QuoRem(count, 0)

	prizes := make([]decimal.Decimal, n)
	for i := 0; i < n-1; i++ {
		prizes[i] = share.Shift(-domain.MoneyScale)
	}
	prizes[n-1] = cents.Sub(share.Mul(decimal.NewFromInt(int64(n - 1)))).Shift(-domain.MoneyScale)
	return prizes
}

// Pay charges the card for the whole order and opens its contests. Card debit, contests and
// the EXPENSE log row are committed together or not at all. Returns the new order id.
func (s *Service) Pay(ctx context.Context, userID int, payment domain.Payment) (string, error) {
	ctx, span := s.tracer.Start(ctx, "paymentservice.Pay")
	defer span.End()

	if !domain.IsValidAmount(payment.Price) {
		return "", domain.ErrInvalidAmount
	}
	if len(payment.Contests) == 0 {
		return "", domain.ErrEmptyOrder
	}

	card := domain.NewCard(payment.Card.Number, payment.Card.CVC, payment.Card.Expiry)
	orderID := s.newOrderID()
	createdAt := s.now()
	prizes := SplitPrize(payment.Price, len(payment.Contests))

	contests := make([]domain.Contest, len(payment.Contests))
	for i, c := range payment.Contests {
		c.OrderID = orderID
		c.UserID = userID
		c.Priority = i + 1
		c.Prize = prizes[i]
		c.CreatedAt = createdAt
		c.Status = domain.ContestStatusPending
		if i == 0 {
			c.Status = domain.ContestStatusActive
		}
		contests[i] = c
	}

	span.SetAttributes(
		attribute.Int("user_id", userID),
		attribute.String("order_id", orderID),
		attribute.Int("contests", len(contests)),
	)

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Transfer(ctx, card, s.reserve, payment.Price); err != nil {
			return err
		}
		if _, err := s.contestRepo.CreateBatch(ctx, contests); err != nil {
			return err
		}
		_, err := s.transactionRepo.Create(ctx, &domain.Transaction{
			Amount:        payment.Price,
			OperationType: domain.OperationExpense,
			UserID:        userID,
		})
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment failed")
		zap.L().Error("payment failed", zap.Int("user_id", userID), zap.Error(err))
		return "", err
	}

	if s.paymentCounter != nil {
		s.paymentCounter.Add(ctx, 1)
	}
	zap.L().Info("order paid",
		zap.String("order_id", orderID),
		zap.Int("user_id", userID),
		zap.String("price", payment.Price.String()),
	)
	return orderID, nil
}

// Cashout moves sum from the user's platform balance to the given card and returns the balance left.
func (s *Service) Cashout(ctx context.Context, userID int, cashout domain.Cashout) (decimal.Decimal, error) {
	ctx, span := s.tracer.Start(ctx, "paymentservice.Cashout")
	defer span.End()

	if !domain.IsValidAmount(cashout.Sum) {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	card := domain.NewCard(cashout.Card.Number, cashout.Card.CVC, cashout.Card.Expiry)
	span.SetAttributes(attribute.Int("user_id", userID))

	var balance decimal.Decimal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.userRepo.WithdrawBalance(ctx, userID, cashout.Sum)
		if err != nil {
			return err
		}
		if err := s.accountRepo.Payout(ctx, s.reserve, card, cashout.Sum); err != nil {
			return err
		}
		_, err = s.transactionRepo.Create(ctx, &domain.Transaction{
			Amount:        cashout.Sum,
			OperationType: domain.OperationIncome,
			UserID:        userID,
		})
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cashout failed")
		zap.L().Error("cashout failed", zap.Int("user_id", userID), zap.Error(err))
		return decimal.Zero, err
	}

	if s.cashoutCounter != nil {
		s.cashoutCounter.Add(ctx, 1)
	}
	zap.L().Info("cashout completed", zap.Int("user_id", userID), zap.String("sum", cashout.Sum.String()))
	return balance, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

func (s *Service) GetContests(ctx context.Context, userID int) ([]domain.Contest, error) {
	contests, err := s.contestRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch contests", zap.Error(err))
		return nil, err
	}
	return contests, nil
}
