package ratingservice

//go:generate mockgen -source=ratingservice.go -destination=ratingservice_mock.go -package=ratingservice

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
)

const (
	minMark = 0
	maxMark = 5
)

type UserRepo interface {
	LockByID(ctx context.Context, id int) error
	UpdateRating(ctx context.Context, id int, rating *float64) error
}

type RatingRepo interface {
	FindOfferCreator(ctx context.Context, offerID int) (int, error)
	Create(ctx context.Context, rating domain.Rating) error
	Update(ctx context.Context, rating domain.Rating) error
	FindMarksByCreator(ctx context.Context, creatorID int) ([]float64, error)
}

// Publisher receives rating changes once they are committed.
type Publisher interface {
	Publish(event domain.RatingChanged)
}

type Service struct {
	txManager  pg.TXManager
	userRepo   UserRepo
	ratingRepo RatingRepo
	publisher  Publisher
	tracer     trace.Tracer
	now        func() time.Time
}

func New(txManager pg.TXManager, userRepo UserRepo, ratingRepo RatingRepo, publisher Publisher) *Service {
	return &Service{
		txManager:  txManager,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		publisher:  publisher,
		tracer:     otel.Tracer("github.com/GlebRadaev/squadhelp/internal/service/ratingservice"),
		now:        time.Now,
	}
}

// AverageMark returns the arithmetic mean of marks, or nil when there are none.
func AverageMark(marks []float64) *float64 {
	if len(marks) == 0 {
		return nil
	}
	var sum float64
	for _, m := range marks {
		sum += m
	}
	avg := sum / float64(len(marks))
	return &avg
}

// ChangeMark stores the customer's mark and recomputes the creator's average in the same transaction.
// The creator row is locked first so concurrent recomputes for one creator run one after another.
func (s *Service) ChangeMark(ctx context.Context, userID int, change domain.MarkChange) (*domain.CreatorRating, error) {
	ctx, span := s.tracer.Start(ctx, "ratingservice.ChangeMark")
	defer span.End()
	span.SetAttributes(
		attribute.Int("offer_id", change.OfferID),
		attribute.Int("creator_id", change.CreatorID),
		attribute.Bool("is_first", change.IsFirst),
	)

	if change.Mark < minMark || change.Mark > maxMark {
		return nil, domain.ErrInvalidMark
	}

	rating := domain.Rating{OfferID: change.OfferID, UserID: userID, Mark: change.Mark}
	var avg *float64

	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	err := s.txManager.BeginWithOptions(ctx, opts, func(ctx context.Context) error {
		if err := s.userRepo.LockByID(ctx, change.CreatorID); err != nil {
			return err
		}

		creatorID, err := s.ratingRepo.FindOfferCreator(ctx, change.OfferID)
		if err != nil {
			return err
		}
		if creatorID != change.CreatorID {
			return domain.ErrOfferNotOwned
		}

		if change.IsFirst {
			err = s.ratingRepo.Create(ctx, rating)
		} else {
			err = s.ratingRepo.Update(ctx, rating)
		}
		if err != nil {
			return err
		}

		marks, err := s.ratingRepo.FindMarksByCreator(ctx, change.CreatorID)
		if err != nil {
			return err
		}
		avg = AverageMark(marks)
		if avg == nil {
			return nil
		}
		return s.userRepo.UpdateRating(ctx, change.CreatorID, avg)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "change mark failed")
		zap.L().Error("failed to change mark", zap.Int("offer_id", change.OfferID), zap.Error(err))
		return nil, err
	}

	s.publisher.Publish(domain.RatingChanged{
		CreatorID: change.CreatorID,
		Rating:    avg,
		ChangedAt: s.now(),
	})

	return &domain.CreatorRating{UserID: change.CreatorID, Rating: avg}, nil
}
