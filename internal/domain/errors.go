package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrAccountNotFound     = errors.New("card account not found")
	ErrInsufficientFunds   = errors.New("insufficient funds on card")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrEmptyOrder          = errors.New("order has no contests")

	ErrOfferNotFound  = errors.New("offer not found")
	ErrOfferNotOwned  = errors.New("offer does not belong to creator")
	ErrRatingNotFound = errors.New("rating not found")
	ErrInvalidMark    = errors.New("mark must be between 0 and 5")
)
