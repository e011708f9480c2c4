package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/squadhelp/docs"
	"github.com/GlebRadaev/squadhelp/internal/domain"
	authhandlers "github.com/GlebRadaev/squadhelp/internal/handlers/auth"
	paymenthandlers "github.com/GlebRadaev/squadhelp/internal/handlers/payment"
	ratinghandlers "github.com/GlebRadaev/squadhelp/internal/handlers/rating"
	userhandlers "github.com/GlebRadaev/squadhelp/internal/handlers/user"
	"github.com/GlebRadaev/squadhelp/internal/service"
	"github.com/GlebRadaev/squadhelp/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=handlers_mock.go -package=handlers
type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Pay(w http.ResponseWriter, r *http.Request)
	Cashout(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	GetContests(w http.ResponseWriter, r *http.Request)
}

type RatingHandler interface {
	ChangeMark(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	UserHandler    UserHandler
	PaymentHandler PaymentHandler
	RatingHandler  RatingHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		UserHandler:    userhandlers.New(s.UserService),
		PaymentHandler: paymenthandlers.New(s.PaymentService),
		RatingHandler:  ratinghandlers.New(s.RatingService),
		jwtService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.jwtService))
			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.UserHandler.GetProfile)
				r.Patch("/", h.UserHandler.UpdateProfile)
			})
			r.Get("/transactions", h.PaymentHandler.GetTransactions)
			r.Get("/contests", h.PaymentHandler.GetContests)

			r.With(auth.RequireRole(domain.RoleCustomer)).Post("/payment", h.PaymentHandler.Pay)
			r.With(auth.RequireRole(domain.RoleCustomer)).Post("/mark", h.RatingHandler.ChangeMark)
			r.With(auth.RequireRole(domain.RoleCreator)).Post("/cashout", h.PaymentHandler.Cashout)
		})
	})

	return r
}
