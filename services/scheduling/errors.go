package scheduling

import "errors"

var (
	// ErrNotFound is returned when the referenced provider or appointment
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlotAlreadyBooked is returned when a reservation loses the race
	// for a (provider, date, time) triple.
	ErrSlotAlreadyBooked = errors.New("slot already booked")

	// ErrSlotUnavailable is returned when the requested slot does not fall
	// inside the provider's availability window for that weekday.
	ErrSlotUnavailable = errors.New("slot outside provider availability")

	// ErrInvalidTransition is returned for any state-machine move other
	// than booked->cancelled or booked->completed.
	ErrInvalidTransition = errors.New("invalid appointment transition")

	// ErrUnauthorized is returned when the actor is neither the owning
	// provider nor an administrator.
	ErrUnauthorized = errors.New("actor not allowed to modify appointment")

	// ErrReasonRequired is returned when a cancellation carries no reason.
	ErrReasonRequired = errors.New("cancellation reason required")

	// ErrValidation is returned for malformed dates, times or amounts.
	ErrValidation = errors.New("validation failed")
)
