package dto

import "github.com/shopspring/decimal"

func init() {
	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
