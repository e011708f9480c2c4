package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContestRequestDTO struct {
	ContestType    string `json:"contestType" validate:"required,oneof=name tagline logo" example:"name"`
	Title          string `json:"title" validate:"required,max=255" example:"Name for a coffee shop"`
	Industry       string `json:"industry" example:"Food"`
	FocusOfWork    string `json:"focusOfWork" example:"Warm and cosy"`
	TargetCustomer string `json:"targetCustomer" example:"Students"`
	StyleName      string `json:"styleName" example:"Classic"`
	NameVenture    string `json:"nameVenture" example:"Beanery"`
	TypeOfName     string `json:"typeOfName" example:"Company"`
	TypeOfTagline  string `json:"typeOfTagline" example:"Fun"`
	BrandStyle     string `json:"brandStyle" example:"Minimal"`
}

type PaymentRequestDTO struct {
	Number   string              `json:"number" validate:"required,luhn" example:"4111 1111 1111 1111"`
	CVC      string              `json:"cvc" validate:"required,numeric,min=3,max=4" example:"123"`
	Expiry   string              `json:"expiry" validate:"required,expiry" example:"09/27"`
	Price    decimal.Decimal     `json:"price" validate:"gt=0" swaggertype:"number" example:"100"`
	Contests []ContestRequestDTO `json:"contests" validate:"required,min=1,dive"`
}

type CashoutRequestDTO struct {
	Number string          `json:"number" validate:"required,luhn" example:"4111 1111 1111 1111"`
	CVC    string          `json:"cvc" validate:"required,numeric,min=3,max=4" example:"123"`
	Expiry string          `json:"expiry" validate:"required,expiry" example:"09/27"`
	Sum    decimal.Decimal `json:"sum" validate:"gt=0" swaggertype:"number" example:"50"`
}

type CashoutResponseDTO struct {
	Balance decimal.Decimal `json:"balance" swaggertype:"number" example:"70.5"`
}

type TransactionResponseDTO struct {
	ID            int             `json:"id" example:"1"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"number" example:"100"`
	OperationType string          `json:"operationType" example:"EXPENSE"`
	CreatedAt     time.Time       `json:"createdAt" example:"2024-05-01T10:00:00Z"`
}

type ContestResponseDTO struct {
	ID          int             `json:"id" example:"1"`
	OrderID     string          `json:"orderId" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	ContestType string          `json:"contestType" example:"name"`
	Title       string          `json:"title" example:"Name for a coffee shop"`
	Status      string          `json:"status" example:"active"`
	Priority    int             `json:"priority" example:"1"`
	Prize       decimal.Decimal `json:"prize" swaggertype:"number" example:"33.33"`
	CreatedAt   time.Time       `json:"createdAt" example:"2024-05-01T10:00:00Z"`
}
