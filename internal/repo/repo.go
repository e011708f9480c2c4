package repo

import (
	"context"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
	accountrepo "github.com/GlebRadaev/squadhelp/internal/repo/account-repo"
	contestrepo "github.com/GlebRadaev/squadhelp/internal/repo/contest-repo"
	ratingrepo "github.com/GlebRadaev/squadhelp/internal/repo/rating-repo"
	transactionrepo "github.com/GlebRadaev/squadhelp/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/squadhelp/internal/repo/user-repo"
	"github.com/GlebRadaev/squadhelp/internal/service/authservice"
	"github.com/GlebRadaev/squadhelp/internal/service/paymentservice"
	"github.com/GlebRadaev/squadhelp/internal/service/ratingservice"
	"github.com/GlebRadaev/squadhelp/internal/service/userservice"
)

// UserRepo is everything the services need from the users table.
type UserRepo interface {
	authservice.Repo
	userservice.Repo
	paymentservice.UserRepo
	ratingservice.UserRepo
}

type AccountRepo interface {
	paymentservice.AccountRepo
	EnsureAccount(ctx context.Context, card domain.Card) error
	FindByCard(ctx context.Context, card domain.Card) (*domain.Account, error)
}

type Repositories struct {
	UserRepo        UserRepo
	AccountRepo     AccountRepo
	ContestRepo     paymentservice.ContestRepo
	TransactionRepo paymentservice.TransactionRepo
	RatingRepo      ratingservice.RatingRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		AccountRepo:     accountrepo.New(conn, txManager),
		ContestRepo:     contestrepo.New(conn, txManager),
		TransactionRepo: transactionrepo.New(conn),
		RatingRepo:      ratingrepo.New(conn),
	}
}
