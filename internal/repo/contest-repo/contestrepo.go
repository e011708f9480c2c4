package contestrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
)

const insertContestQuery = `
	INSERT INTO contests (
		order_id, user_id, contest_type, title, industry, focus_of_work, target_customer,
		style_name, name_venture, type_of_name, type_of_tagline, brand_style, status, priority, prize, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING id
`

const contestColumns = `id, order_id, user_id, contest_type, title, industry, focus_of_work, target_customer,
	style_name, name_venture, type_of_name, type_of_tagline, brand_style, status, priority, prize, created_at`

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

// CreateBatch stores all contests of one order or none of them.
func (r *Repository) CreateBatch(ctx context.Context, contests []domain.Contest) ([]domain.Contest, error) {
	saved := make([]domain.Contest, 0, len(contests))
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		for _, c := range contests {
			err := r.db.QueryRow(ctx, insertContestQuery,
				c.OrderID, c.UserID, c.ContestType, c.Title, c.Industry, c.FocusOfWork, c.TargetCustomer,
				c.StyleName, c.NameVenture, c.TypeOfName, c.TypeOfTagline, c.BrandStyle, c.Status, c.Priority, c.Prize, c.CreatedAt,
			).Scan(&c.ID)
			if err != nil {
				zap.L().Error("can't save contest", zap.String("order_id", c.OrderID), zap.Int("priority", c.Priority), zap.Error(err))
				return err
			}
			saved = append(saved, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Contest, error) {
	query := `
		SELECT ` + contestColumns + `
		FROM contests
		WHERE user_id = $1
		ORDER BY created_at DESC, order_id, priority
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get contests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var contests []domain.Contest
	for rows.Next() {
		var c domain.Contest
		err := rows.Scan(
			&c.ID, &c.OrderID, &c.UserID, &c.ContestType, &c.Title, &c.Industry, &c.FocusOfWork, &c.TargetCustomer,
			&c.StyleName, &c.NameVenture, &c.TypeOfName, &c.TypeOfTagline, &c.BrandStyle, &c.Status, &c.Priority, &c.Prize, &c.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan contest row", zap.Error(err))
			return nil, err
		}
		contests = append(contests, c)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read contests", zap.Error(err))
		return nil, err
	}
	return contests, nil
}
