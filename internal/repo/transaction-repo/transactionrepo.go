package transactionrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create appends a row to the transaction log. Rows are never updated afterwards.
func (r *Repository) Create(ctx context.Context, trx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (amount, operation_type, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, trx.Amount, trx.OperationType, trx.UserID).Scan(&trx.ID, &trx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return trx, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error) {
	query := `
		SELECT id, amount, operation_type, user_id, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var trx domain.Transaction
		err := rows.Scan(&trx.ID, &trx.Amount, &trx.OperationType, &trx.UserID, &trx.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, trx)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to read transactions", zap.Error(err))
		return nil, err
	}

	return transactions, nil
}
