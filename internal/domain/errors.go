package domain

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrProductionNotFound = errors.New("production record not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidStage       = errors.New("invalid production stage")
)
