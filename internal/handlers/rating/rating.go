package rating

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/dto"
	"github.com/GlebRadaev/squadhelp/pkg/auth"
	"github.com/GlebRadaev/squadhelp/pkg/utils"
	"github.com/GlebRadaev/squadhelp/pkg/validate"
)

//go:generate mockgen -source=rating.go -destination=rating_mock.go -package=rating
type Service interface {
	ChangeMark(ctx context.Context, userID int, change domain.MarkChange) (*domain.CreatorRating, error)
}

type RatingHandler struct {
	ratingService Service
}

func New(ratingService Service) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// ChangeMark godoc
//
//	@Summary		Rate a creator's offer
//	@Description	Stores the caller's mark for the offer and returns the creator's recomputed average rating.
//	@Tags			Ratings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.MarkRequestDTO	true	"Mark request payload"
//	@Success		200		{object}	dto.MarkResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Offer does not belong to creator"
//	@Failure		404		{object}	utils.Response	"Offer or rating not found"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/mark [post]
func (h *RatingHandler) ChangeMark(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.MarkRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	rating, err := h.ratingService.ChangeMark(r.Context(), userID, domain.MarkChange{
		OfferID:   req.OfferID,
		CreatorID: req.CreatorID,
		Mark:      req.Mark,
		IsFirst:   req.IsFirst,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOfferNotFound), errors.Is(err, domain.ErrRatingNotFound), errors.Is(err, domain.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrOfferNotOwned):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrInvalidMark):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MarkResponseDTO{
		UserID: rating.UserID,
		Rating: rating.Rating,
	})
}
