package validate

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/ShiraazMoollatjie/goluhn"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

var cardSeparators = strings.NewReplacer(" ", "", "-", "")

// IsLuhn reports whether the card number passes the Luhn checksum. Spaces and dashes are ignored.
func IsLuhn(s string) bool {
	s = cardSeparators.Replace(s)
	if s == "" {
		return false
	}
	return goluhn.Validate(s) == nil
}

func IsExpiry(s string) bool {
	return expiryPattern.MatchString(strings.TrimSpace(s))
}

// Validator returns the shared validator with the card tags registered.
// decimal.Decimal fields are validated as float64, so numeric tags like gt=0 apply to them.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("luhn", func(fl validator.FieldLevel) bool {
			return IsLuhn(fl.Field().String())
		})
		_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
			return IsExpiry(fl.Field().String())
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		instance = v
	})
	return instance
}

func Struct(s any) error {
	return Validator().Struct(s)
}
