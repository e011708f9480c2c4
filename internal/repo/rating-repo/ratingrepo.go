package ratingrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
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

// FindOfferCreator returns the id of the creator who posted the offer.
func (r *Repository) FindOfferCreator(ctx context.Context, offerID int) (int, error) {
	var creatorID int
	err := r.db.QueryRow(ctx, "SELECT user_id FROM offers WHERE id = $1", offerID).Scan(&creatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrOfferNotFound
		}
		zap.L().Error("can't find offer", zap.Error(err))
		return 0, err
	}
	return creatorID, nil
}

// Create stores a first mark. A repeated first mark from the same user replaces the stored one.
func (r *Repository) Create(ctx context.Context, rating domain.Rating) error {
	query := `
		INSERT INTO ratings (offer_id, user_id, mark)
		VALUES ($1, $2, $3)
		ON CONFLICT (offer_id, user_id) DO UPDATE SET mark = EXCLUDED.mark
	`
	_, err := r.db.Exec(ctx, query, rating.OfferID, rating.UserID, rating.Mark)
	if err != nil {
		zap.L().Error("can't save rating", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, rating domain.Rating) error {
	query := `
		UPDATE ratings
		SET mark = $1
		WHERE offer_id = $2 AND user_id = $3
	`
	tag, err := r.db.Exec(ctx, query, rating.Mark, rating.OfferID, rating.UserID)
	if err != nil {
		zap.L().Error("can't update rating", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRatingNotFound
	}
	return nil
}

// FindMarksByCreator returns every mark given to any offer of the creator.
func (r *Repository) FindMarksByCreator(ctx context.Context, creatorID int) ([]float64, error) {
	query := `
		SELECT r.mark
		FROM ratings r
		JOIN offers o ON o.id = r.offer_id
		WHERE o.user_id = $1
	`
	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		zap.L().Error("can't get creator marks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var marks []float64
	for rows.Next() {
		var mark float64
		if err := rows.Scan(&mark); err != nil {
			zap.L().Error("can't scan mark", zap.Error(err))
			return nil, err
		}
		marks = append(marks, mark)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read creator marks", zap.Error(err))
		return nil, err
	}
	return marks, nil
}
