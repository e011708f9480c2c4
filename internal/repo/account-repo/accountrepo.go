package accountrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
)

// transferQuery moves $7 from the first credential tuple to the second in a single statement.
// Rows matching neither tuple are not touched.
const transferQuery = `
	UPDATE accounts
	SET balance = CASE
		WHEN card_number = $1 AND cvc = $2 AND expiry = $3 THEN balance - $7
		WHEN card_number = $4 AND cvc = $5 AND expiry = $6 THEN balance + $7
	END
	WHERE (card_number = $1 AND cvc = $2 AND expiry = $3)
		OR (card_number = $4 AND cvc = $5 AND expiry = $6)
	RETURNING card_number, balance
`

const ensureAccountQuery = `
	INSERT INTO accounts (card_number, cvc, expiry, balance)
	VALUES ($1, $2, $3, 0)
	ON CONFLICT (card_number) DO NOTHING
`

const findByCardQuery = `
	SELECT id, card_number, cvc, expiry, balance
	FROM accounts
	WHERE card_number = $1 AND cvc = $2 AND expiry = $3
`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Transfer debits from and credits to as one atomic update. Both legs must match an account,
// otherwise ErrAccountNotFound is returned and nothing is kept. The debited card may not go below zero.
func (r *Repository) Transfer(ctx context.Context, from, to domain.Card, amount decimal.Decimal) error {
	return r.transfer(ctx, from, to, amount, true)
}

// Payout is Transfer without the overdraft check on from. The platform reserve pays out through it
// and is allowed to run negative.
func (r *Repository) Payout(ctx context.Context, from, to domain.Card, amount decimal.Decimal) error {
	return r.transfer(ctx, from, to, amount, false)
}

func (r *Repository) transfer(ctx context.Context, from, to domain.Card, amount decimal.Decimal, checkFrom bool) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, transferQuery,
			from.Number, from.CVC, from.Expiry,
			to.Number, to.CVC, to.Expiry,
			amount,
		)
		if err != nil {
			zap.L().Error("failed to transfer between accounts", zap.Error(err))
			return err
		}
		defer rows.Close()

		var matched int
		var fromBalance decimal.Decimal
		for rows.Next() {
			var number string
			var balance decimal.Decimal
			if err := rows.Scan(&number, &balance); err != nil {
				zap.L().Error("failed to scan transferred account", zap.Error(err))
				return err
			}
			matched++
			if number == from.Number {
				fromBalance = balance
			}
		}
		if err := rows.Err(); err != nil {
			zap.L().Error("failed to read transfer result", zap.Error(err))
			return err
		}

		if matched != 2 {
			zap.L().Info("transfer counterparty not matched", zap.Int("matched", matched))
			return domain.ErrAccountNotFound
		}
		if checkFrom && fromBalance.IsNegative() {
			zap.L().Info("transfer would overdraw account", zap.String("balance", fromBalance.String()))
			return domain.ErrInsufficientFunds
		}
		return nil
	})
}

func (r *Repository) EnsureAccount(ctx context.Context, card domain.Card) error {
	_, err := r.db.Exec(ctx, ensureAccountQuery, card.Number, card.CVC, card.Expiry)
	if err != nil {
		zap.L().Error("failed to ensure account", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByCard(ctx context.Context, card domain.Card) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(ctx, findByCardQuery, card.Number, card.CVC, card.Expiry).
		Scan(&account.ID, &account.Card.Number, &account.Card.CVC, &account.Card.Expiry, &account.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to find account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}
