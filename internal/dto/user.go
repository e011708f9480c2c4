package dto

import "github.com/shopspring/decimal"

type ProfileResponseDTO struct {
	ID          int             `json:"id" example:"1"`
	FirstName   string          `json:"firstName" example:"John"`
	LastName    string          `json:"lastName" example:"Doe"`
	DisplayName string          `json:"displayName" example:"johnny"`
	Avatar      string          `json:"avatar" example:"anon.png"`
	Email       string          `json:"email" example:"john@example.com"`
	Balance     decimal.Decimal `json:"balance" swaggertype:"number" example:"120.5"`
	Role        string          `json:"role" example:"creator"`
	Rating      *float64        `json:"rating,omitempty" example:"4.5"`
}

// ProfileUpdateRequestDTO is read from multipart form fields.
type ProfileUpdateRequestDTO struct {
	FirstName   string `validate:"omitempty,max=64"`
	LastName    string `validate:"omitempty,max=64"`
	DisplayName string `validate:"omitempty,max=64"`
}
