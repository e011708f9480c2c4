package service

import (
	"time"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/handlers/auth"
	"github.com/GlebRadaev/squadhelp/internal/handlers/payment"
	"github.com/GlebRadaev/squadhelp/internal/handlers/rating"
	"github.com/GlebRadaev/squadhelp/internal/handlers/user"
	"github.com/GlebRadaev/squadhelp/internal/pg"
	"github.com/GlebRadaev/squadhelp/internal/repo"
	authservice "github.com/GlebRadaev/squadhelp/internal/service/authservice"
	paymentservice "github.com/GlebRadaev/squadhelp/internal/service/paymentservice"
	ratingservice "github.com/GlebRadaev/squadhelp/internal/service/ratingservice"
	userservice "github.com/GlebRadaev/squadhelp/internal/service/userservice"

	pkgauth "github.com/GlebRadaev/squadhelp/pkg/auth"
)

// Deps are the collaborators that do not come from the database.
type Deps struct {
	JWTService pkgauth.JWTServiceInterface
	TokenTTL   time.Duration
	HashCost   int
	Reserve    domain.Card
	Publisher  ratingservice.Publisher
	Files      userservice.FileStore
}

type Services struct {
	AuthService    auth.Service
	UserService    user.Service
	PaymentService payment.Service
	RatingService  rating.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, deps Deps) *Services {
	authService := authservice.New(repo.UserRepo, pkgauth.NewHashService(deps.HashCost), deps.JWTService, deps.TokenTTL)
	userService := userservice.New(repo.UserRepo, deps.Files)
	paymentService := paymentservice.New(
		txManager,
		repo.AccountRepo,
		repo.UserRepo,
		repo.ContestRepo,
		repo.TransactionRepo,
		deps.Reserve,
	)
	ratingService := ratingservice.New(txManager, repo.UserRepo, repo.RatingRepo, deps.Publisher)

	return &Services{
		AuthService:    authService,
		UserService:    userService,
		PaymentService: paymentService,
		RatingService:  ratingService,
	}
}
