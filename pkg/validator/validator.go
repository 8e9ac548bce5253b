package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

// PhoneRegion is the default region for numbers written without a country code
const PhoneRegion = "ID"

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
}

var validate = validator.New()

func init() {
	// Stock ledger direction as sent by the stock adjustment form
	validate.RegisterValidation("stock_direction", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "in" || v == "out"
	})
	// Free text that must not be only whitespace
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// Customer and user contact numbers, local (08...) or international (+62...)
	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
}

// ValidPhone reports whether number parses as a valid number for PhoneRegion
func ValidPhone(number string) bool {
	p, err := libphonenumber.Parse(number, PhoneRegion)
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(p)
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
	}
	for _, err := range verrs {
		errs = append(errs, &ErrorResponse{
			FailedField: err.StructNamespace(),
			Tag:         err.Tag(),
			Value:       err.Param(),
		})
	}
	return errs
}

// Validate returns the first failure as an error, or nil
func Validate(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return fmt.Errorf("field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}
