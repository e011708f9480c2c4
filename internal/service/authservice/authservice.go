package authservice

//go:generate mockgen -source=authservice.go -destination=authservice_mock.go -package=authservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/pkg/auth"
)

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateAccessToken(ctx context.Context, id int, token string) error
}

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
	now         func() time.Time
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:    repo,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

func (s *Service) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, reg.Email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("email", reg.Email))
		return nil, domain.ErrEmailTaken
	}
	hashedPassword, err := s.hashService.HashPassword(reg.Password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		DisplayName:  reg.DisplayName,
		Email:        reg.Email,
		PasswordHash: hashedPassword,
		Role:         reg.Role,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("email", reg.Email), zap.String("role", reg.Role))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("email", email))
	return user, nil
}

// IssueToken signs a token carrying the user's profile and remembers it on the user row.
func (s *Service) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	profile := auth.Profile{
		UserID:      user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Email:       user.Email,
		Role:        user.Role,
		Balance:     user.Balance,
		Rating:      user.Rating,
	}
	token, err := s.jwtService.GenerateJWT(profile, s.now().Add(s.tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	if err := s.userRepo.UpdateAccessToken(ctx, user.ID, token); err != nil {
		zap.L().Error("can't save access token", zap.Error(err))
		return "", err
	}
	return token, nil
}
