package service

import (
	"errors"
	"fmt"

	"github.com/syafrud/Kasir-new-sub000/pkg/validator"
)

// Validation
var (
	ErrValidation  = errors.New("validation failed")
	ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD or YYYY-MM-DDTHH:MM")
)

// Not found
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRoleNotFound     = errors.New("role not found")
)

// Conflicts
var (
	ErrBarcodeTaken   = errors.New("barcode already taken")
	ErrCategoryExists = errors.New("category already exists")
	ErrCategoryInUse  = errors.New("category still has products")
	ErrUsernameTaken  = errors.New("username already taken")
)

// Business rules
var (
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrEmptyCart             = errors.New("sale must contain at least one item")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrOperatorRequired      = errors.New("operator is required")
	ErrOperatorInactive      = errors.New("operator account is inactive")
	ErrCustomerInactive      = errors.New("customer is inactive")
	ErrPaymentInsufficient   = errors.New("payment less than total")
	ErrInvalidEventProduct   = errors.New("event discount is not active for this product")
	ErrInvalidEventWindow    = errors.New("event end must be after its start")
	ErrDuplicateEventProduct = errors.New("product listed twice in event")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own account")
)

// Auth
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
)

// validate runs struct validation and wraps the first failure in ErrValidation
func validate(req interface{}) error {
	if err := validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return nil
}
