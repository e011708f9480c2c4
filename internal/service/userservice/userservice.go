package userservice

//go:generate mockgen -source=userservice.go -destination=userservice_mock.go -package=userservice

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
)

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int, upd domain.ProfileUpdate) (*domain.User, error)
}

type FileStore interface {
	Save(originalName string, content io.Reader) (string, error)
	Remove(name string) error
}

type Service struct {
	userRepo Repo
	files    FileStore
}

func New(repo Repo, files FileStore) *Service {
	return &Service{
		userRepo: repo,
		files:    files,
	}
}

func (s *Service) GetProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't get profile", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the non-empty fields of upd. When avatar is set the file is stored first
// and its generated name replaces upd.Avatar.
func (s *Service) UpdateProfile(ctx context.Context, userID int, upd domain.ProfileUpdate, avatar *domain.Upload) (*domain.User, error) {
	if avatar != nil {
		name, err := s.files.Save(avatar.Name, avatar.Content)
		if err != nil {
			zap.L().Error("can't store avatar", zap.Error(err))
			return nil, err
		}
		upd.Avatar = name
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, upd)
	if err != nil {
		zap.L().Error("can't update profile", zap.Error(err))
		if avatar != nil {
			if rmErr := s.files.Remove(upd.Avatar); rmErr != nil {
				zap.L().Error("can't remove orphaned avatar", zap.String("file", upd.Avatar), zap.Error(rmErr))
			}
		}
		return nil, err
	}
	return user, nil
}
