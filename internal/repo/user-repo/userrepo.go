package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
)

const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

const userColumns = `id, first_name, last_name, display_name, email, password_hash, avatar, role, balance, rating, access_token, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.DisplayName, &user.Email, &user.PasswordHash,
		&user.Avatar, &user.Role, &user.Balance, &user.Rating, &user.AccessToken, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by email", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, display_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, avatar, balance, created_at
	`
	err := repo.db.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.DisplayName, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.Avatar, &user.Balance, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) UpdateAccessToken(ctx context.Context, id int, token string) error {
	tag, err := repo.db.Exec(ctx, "UPDATE users SET access_token = $1 WHERE id = $2", token, id)
	if err != nil {
		zap.L().Error("can't save access token", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateProfile overwrites only the non-empty fields of upd.
func (repo *Repository) UpdateProfile(ctx context.Context, id int, upd domain.ProfileUpdate) (*domain.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE(NULLIF($1, ''), first_name),
			last_name = COALESCE(NULLIF($2, ''), last_name),
			display_name = COALESCE(NULLIF($3, ''), display_name),
			avatar = COALESCE(NULLIF($4, ''), avatar)
		WHERE id = $5
		RETURNING ` + userColumns
	user, err := scanUser(repo.db.QueryRow(ctx, query, upd.FirstName, upd.LastName, upd.DisplayName, upd.Avatar, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		zap.L().Error("can't update profile", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// WithdrawBalance subtracts sum from the user balance and returns what is left.
func (repo *Repository) WithdrawBalance(ctx context.Context, id int, sum decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE users
		SET balance = balance - $1
		WHERE id = $2
		RETURNING balance
	`
	var balance decimal.Decimal
	err := repo.db.QueryRow(ctx, query, sum, id).Scan(&balance)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return decimal.Zero, domain.ErrUserNotFound
		case errors.As(err, &pgErr) && pgErr.Code == checkViolation:
			return decimal.Zero, domain.ErrInsufficientBalance
		}
		zap.L().Error("failed to withdraw user balance", zap.Error(err))
		return decimal.Zero, err
	}
	if balance.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientBalance
	}
	return balance, nil
}

// LockByID takes a row lock on the user until the surrounding transaction ends.
func (repo *Repository) LockByID(ctx context.Context, id int) error {
	var lockedID int
	err := repo.db.QueryRow(ctx, "SELECT id FROM users WHERE id = $1 FOR UPDATE", id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		zap.L().Error("can't lock user", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) UpdateRating(ctx context.Context, id int, rating *float64) error {
	tag, err := repo.db.Exec(ctx, "UPDATE users SET rating = $1 WHERE id = $2", rating, id)
	if err != nil {
		zap.L().Error("can't update rating", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
