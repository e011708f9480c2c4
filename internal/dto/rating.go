package dto

type MarkRequestDTO struct {
	OfferID   int     `json:"offerId" validate:"required,gt=0" example:"10"`
	CreatorID int     `json:"creatorId" validate:"required,gt=0" example:"3"`
	Mark      float64 `json:"mark" validate:"gte=0,lte=5" example:"4.5"`
	IsFirst   bool    `json:"isFirst" example:"true"`
}

type MarkResponseDTO struct {
	UserID int      `json:"userId" example:"3"`
	Rating *float64 `json:"rating" example:"4.25"`
}
