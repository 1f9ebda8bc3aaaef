package contract

import "errors"

var (
	ErrModelInvoke  = errors.New("model invoke failed")
	ErrValidation   = errors.New("validation failed")
	ErrBusinessRule = errors.New("business rule rejected")
)
