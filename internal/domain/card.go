package domain

import (
	"strings"
	"unicode"
)

// Card is the credential tuple that identifies an account row.
type Card struct {
	Number string
	CVC    string
	Expiry string
}

// NewCard strips spaces, dashes and any other non-digit formatting from the number.
func NewCard(number, cvc, expiry string) Card {
	return Card{
		Number: NormalizeCardNumber(number),
		CVC:    strings.TrimSpace(cvc),
		Expiry: strings.TrimSpace(expiry),
	}
}

func NormalizeCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
}

func (c Card) Equal(other Card) bool {
	return c.Number == other.Number && c.CVC == other.CVC && c.Expiry == other.Expiry
}
