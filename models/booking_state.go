package models

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// BookingState describes how a status interacts with accommodation inventory.
type BookingState interface {
	// UnitsOnTransition returns +1 when moving to next releases the booked
	// units, -1 when it takes them again and 0 when inventory is untouched.
	UnitsOnTransition(next BookingStatus) int
	// ReleasesOnDelete reports whether deleting the booking returns its units.
	ReleasesOnDelete() bool
}

// PendingState holds units until the booking is cancelled.
type PendingState struct{}

func (s *PendingState) UnitsOnTransition(next BookingStatus) int {
	if next == BookingCancelled {
		return 1
	}
	return 0
}

func (s *PendingState) ReleasesOnDelete() bool { return true }

// ConfirmedState holds units the same way a pending booking does.
type ConfirmedState struct{}

func (s *ConfirmedState) UnitsOnTransition(next BookingStatus) int {
	if next == BookingCancelled {
		return 1
	}
	return 0
}

func (s *ConfirmedState) ReleasesOnDelete() bool { return true }

// CompletedState is already reconciled; nothing moves inventory from here.
type CompletedState struct{}

func (s *CompletedState) UnitsOnTransition(next BookingStatus) int { return 0 }

func (s *CompletedState) ReleasesOnDelete() bool { return false }

// CancelledState has already given its units back. Reinstating it takes them again.
type CancelledState struct{}

func (s *CancelledState) UnitsOnTransition(next BookingStatus) int {
	if next == BookingPending || next == BookingConfirmed {
		return -1
	}
	return 0
}

func (s *CancelledState) ReleasesOnDelete() bool { return false }

// GetBookingState returns the state implementation for a status.
func GetBookingState(status BookingStatus) BookingState {
	switch status {
	case BookingConfirmed:
		return &ConfirmedState{}
	case BookingCompleted:
		return &CompletedState{}
	case BookingCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}

// UnitsDelta is the change to apply to available_units when a booking of
// the given quantity moves from s to next.
func (s BookingStatus) UnitsDelta(next BookingStatus, quantity int) int {
	if s == next {
		return 0
	}
	return GetBookingState(s).UnitsOnTransition(next) * quantity
}

// HoldsUnits reports whether a booking in this status still occupies inventory.
func (s BookingStatus) HoldsUnits() bool {
	return GetBookingState(s).ReleasesOnDelete()
}
