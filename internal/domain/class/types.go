package class

import "errors"

var (
	ErrInvalidName             = errors.New("class name is required")
	ErrInvalidInstructor       = errors.New("instructor name and email are required")
	ErrNegativeSeats           = errors.New("available seats cannot be negative")
	ErrNegativePrice           = errors.New("price cannot be negative")
	ErrInvalidStatus           = errors.New("invalid class status")
	ErrInvalidStatusTransition = errors.New("class status can only change while pending")
	ErrNotApproved             = errors.New("class is not approved")
	// ErrSeatUnavailable is returned by the seat ledger when the stored
	// counter is not strictly positive. Nothing is mutated in that case.
	ErrSeatUnavailable = errors.New("no seat available")
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusDenied   Status = "Denied"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
