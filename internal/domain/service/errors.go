package service

import "errors"

var (
	// ErrVersionConflict is returned when the service row changed since it was loaded.
	ErrVersionConflict = errors.New("service was modified concurrently")
	// ErrServiceClosed is returned for part events on a completed or terminal service.
	ErrServiceClosed = errors.New("service is closed for work")
	// ErrInvalidTransition is returned when the event does not apply to the current status.
	ErrInvalidTransition = errors.New("invalid service status transition")
	// ErrOpenOrders is returned when leaving waiting_parts while orders are still open.
	ErrOpenOrders = errors.New("service still has open spare part orders")
	// ErrInvalidCompletion is returned when the completion data is incomplete.
	ErrInvalidCompletion = errors.New("invalid completion data")
)
