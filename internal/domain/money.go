package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of minor-unit digits every stored amount has.
const MoneyScale = 2

// IsValidAmount reports whether d is positive and representable in whole cents.
func IsValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(MoneyScale))
}
