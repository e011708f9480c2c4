package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/dto"
	"github.com/GlebRadaev/squadhelp/pkg/auth"
	"github.com/GlebRadaev/squadhelp/pkg/utils"
	"github.com/GlebRadaev/squadhelp/pkg/validate"
)

const maxMultipartMemory = 5 << 20

//go:generate mockgen -source=user.go -destination=user_mock.go -package=user
type Service interface {
	GetProfile(ctx context.Context, userID int) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int, upd domain.ProfileUpdate, avatar *domain.Upload) (*domain.User, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile godoc
//
//	@Summary		Get current user profile
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ProfileResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toProfileResponse(user))
}

// UpdateProfile godoc
//
//	@Summary		Update current user profile
//	@Description	Empty fields keep their current values. An optional image in "file" replaces the avatar.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			firstName	formData	string	false	"First name"
//	@Param			lastName	formData	string	false	"Last name"
//	@Param			displayName	formData	string	false	"Display name"
//	@Param			file		formData	file	false	"Avatar image"
//	@Success		200			{object}	dto.ProfileResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid request body"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"User not found"
//	@Failure		422			{object}	utils.Response	"Validation failed"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/user/profile [patch]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := dto.ProfileUpdateRequestDTO{
		FirstName:   r.FormValue("firstName"),
		LastName:    r.FormValue("lastName"),
		DisplayName: r.FormValue("displayName"),
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	var avatar *domain.Upload
	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid avatar file")
		return
	default:
		defer file.Close()
		avatar = &domain.Upload{Name: header.Filename, Content: file}
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: req.DisplayName,
	}, avatar)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toProfileResponse(user))
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}

func toProfileResponse(user *domain.User) dto.ProfileResponseDTO {
	return dto.ProfileResponseDTO{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Email:       user.Email,
		Balance:     user.Balance,
		Role:        user.Role,
		Rating:      user.Rating,
	}
}
