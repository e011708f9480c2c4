package dto

type RegisterRequestDTO struct {
	FirstName   string `json:"firstName" validate:"required,max=64" example:"John"`
	LastName    string `json:"lastName" validate:"required,max=64" example:"Doe"`
	DisplayName string `json:"displayName" validate:"required,max=64" example:"johnny"`
	Email       string `json:"email" validate:"required,email" example:"john@example.com"`
	Password    string `json:"password" validate:"required,min=6" example:"secret123"`
	Role        string `json:"role" validate:"required,oneof=customer creator" example:"customer"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"john@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

type TokenResponseDTO struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
