package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/squadhelp/internal/domain"
)

var columns = []string{
	"id", "first_name", "last_name", "display_name", "email", "password_hash",
	"avatar", "role", "balance", "rating", "access_token", "created_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()
	balance := decimal.NewFromInt(250)
	rating := 4.5
	query := regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE email = $1")

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User found",
			email: "john@mail.com",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow(1, "John", "Doe", "jdoe", "john@mail.com", "hash", "anon.png", domain.RoleCreator, balance, &rating, "", createdAt)
				mock.ExpectQuery(query).WithArgs("john@mail.com").WillReturnRows(rows)
			},
			result: &domain.User{
				ID: 1, FirstName: "John", LastName: "Doe", DisplayName: "jdoe", Email: "john@mail.com",
				PasswordHash: "hash", Avatar: "anon.png", Role: domain.RoleCreator, Balance: balance,
				Rating: &rating, CreatedAt: createdAt,
			},
		},
		{
			name:  "User without rating",
			email: "ann@mail.com",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow(2, "Ann", "Lee", "ann", "ann@mail.com", "hash", "anon.png", domain.RoleCustomer, balance, nil, "", createdAt)
				mock.ExpectQuery(query).WithArgs("ann@mail.com").WillReturnRows(rows)
			},
			result: &domain.User{
				ID: 2, FirstName: "Ann", LastName: "Lee", DisplayName: "ann", Email: "ann@mail.com",
				PasswordHash: "hash", Avatar: "anon.png", Role: domain.RoleCustomer, Balance: balance,
				CreatedAt: createdAt,
			},
		},
		{
			name:  "User not found",
			email: "missing@mail.com",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("missing@mail.com").WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			email: "john@mail.com",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("john@mail.com").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()
	query := regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE id = $1")

	mock.ExpectQuery(query).WithArgs(1).WillReturnRows(pgxmock.NewRows(columns).
		AddRow(1, "John", "Doe", "jdoe", "john@mail.com", "hash", "anon.png", domain.RoleCustomer, decimal.Zero, nil, "token", createdAt))
	user, err := repo.FindByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "token", user.AccessToken)
	assert.Nil(t, user.Rating)

	mock.ExpectQuery(query).WithArgs(2).WillReturnError(pgx.ErrNoRows)
	user, err = repo.FindByID(context.Background(), 2)
	assert.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()
	query := regexp.QuoteMeta(`
		INSERT INTO users (first_name, last_name, display_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, avatar, balance, created_at
	`)

	newUser := func() *domain.User {
		return &domain.User{
			FirstName: "John", LastName: "Doe", DisplayName: "jdoe",
			Email: "john@mail.com", PasswordHash: "hash", Role: domain.RoleCustomer,
		}
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
		result    *domain.User
	}{
		{
			name: "Create user successfully",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("John", "Doe", "jdoe", "john@mail.com", "hash", domain.RoleCustomer).
					WillReturnRows(pgxmock.NewRows([]string{"id", "avatar", "balance", "created_at"}).
						AddRow(7, "anon.png", decimal.Zero, createdAt))
			},
			result: &domain.User{
				ID: 7, FirstName: "John", LastName: "Doe", DisplayName: "jdoe", Email: "john@mail.com",
				PasswordHash: "hash", Avatar: "anon.png", Role: domain.RoleCustomer, Balance: decimal.Zero,
				CreatedAt: createdAt,
			},
		},
		{
			name: "Email already taken",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("John", "Doe", "jdoe", "john@mail.com", "hash", domain.RoleCustomer).
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
			},
			expectErr: domain.ErrEmailTaken,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("John", "Doe", "jdoe", "john@mail.com", "hash", domain.RoleCustomer).
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), newUser())
			if tt.expectErr != nil {
				assert.EqualError(t, err, tt.expectErr.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_UpdateAccessToken(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("UPDATE users SET access_token = $1 WHERE id = $2")

	mock.ExpectExec(query).WithArgs("token", 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateAccessToken(context.Background(), 1, "token"))

	mock.ExpectExec(query).WithArgs("token", 2).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.UpdateAccessToken(context.Background(), 2, "token"), domain.ErrUserNotFound)

	mock.ExpectExec(query).WithArgs("token", 3).WillReturnError(errors.New("database error"))
	assert.Error(t, repo.UpdateAccessToken(context.Background(), 3, "token"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateProfile(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()
	query := regexp.QuoteMeta("UPDATE users SET first_name = COALESCE(NULLIF($1, ''), first_name)")
	upd := domain.ProfileUpdate{FirstName: "Jack", Avatar: "a.png"}

	mock.ExpectQuery(query).
		WithArgs("Jack", "", "", "a.png", 1).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(1, "Jack", "Doe", "jdoe", "john@mail.com", "hash", "a.png", domain.RoleCustomer, decimal.Zero, nil, "", createdAt))
	user, err := repo.UpdateProfile(context.Background(), 1, upd)
	assert.NoError(t, err)
	assert.Equal(t, "Jack", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "a.png", user.Avatar)

	mock.ExpectQuery(query).WithArgs("Jack", "", "", "a.png", 2).WillReturnError(pgx.ErrNoRows)
	_, err = repo.UpdateProfile(context.Background(), 2, upd)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithdrawBalance(t *testing.T) {
	repo, mock := NewMock(t)
	sum := decimal.NewFromInt(100)
	query := regexp.QuoteMeta(`
		UPDATE users
		SET balance = balance - $1
		WHERE id = $2
		RETURNING balance
	`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
		result    decimal.Decimal
	}{
		{
			name: "Balance withdrawn",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(sum, 1).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.NewFromInt(50)))
			},
			result: decimal.NewFromInt(50),
		},
		{
			name: "Check constraint rejects overdraft",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(sum, 1).
					WillReturnError(&pgconn.PgError{Code: checkViolation})
			},
			expectErr: domain.ErrInsufficientBalance,
		},
		{
			name: "Negative balance returned",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(sum, 1).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.NewFromInt(-1)))
			},
			expectErr: domain.ErrInsufficientBalance,
		},
		{
			name: "User not found",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(sum, 1).WillReturnError(pgx.ErrNoRows)
			},
			expectErr: domain.ErrUserNotFound,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(sum, 1).WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.WithdrawBalance(context.Background(), 1, sum)
			if tt.expectErr != nil {
				assert.EqualError(t, err, tt.expectErr.Error())
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.result.Equal(result))
			}
		})
	}
}

func TestRepository_LockByID(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT id FROM users WHERE id = $1 FOR UPDATE")

	mock.ExpectQuery(query).WithArgs(1).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	assert.NoError(t, repo.LockByID(context.Background(), 1))

	mock.ExpectQuery(query).WithArgs(2).WillReturnError(pgx.ErrNoRows)
	assert.ErrorIs(t, repo.LockByID(context.Background(), 2), domain.ErrUserNotFound)

	mock.ExpectQuery(query).WithArgs(3).WillReturnError(errors.New("database error"))
	assert.Error(t, repo.LockByID(context.Background(), 3))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateRating(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("UPDATE users SET rating = $1 WHERE id = $2")
	rating := 3.5
	var noRating *float64

	mock.ExpectExec(query).WithArgs(&rating, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateRating(context.Background(), 1, &rating))

	mock.ExpectExec(query).WithArgs(noRating, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateRating(context.Background(), 1, nil))

	mock.ExpectExec(query).WithArgs(&rating, 9).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.UpdateRating(context.Background(), 9, &rating), domain.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
