// models/errors.go
package models

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrAlreadyCompleted   = errors.New("already completed")
	ErrAlreadyOwned       = errors.New("reward already owned")
	ErrInvalidCondition   = errors.New("invalid achievement condition type")
	ErrInvalidStatus      = errors.New("invalid task status")
)
