package settlement

import "errors"

var (
	ErrInvalidStageTransition = errors.New("settlement stage can only move forward")
	ErrNotProcessing          = errors.New("settlement is not processing")
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	// StatusReleased marks a settlement that gave its seat back (class full or
	// compensated failure). The transaction id may be claimed again.
	StatusReleased Status = "released"
)

func (s Status) String() string { return string(s) }

// Stage records the last step that is known to have taken effect.
type Stage int

const (
	StageNone Stage = iota
	StageSeatReserved
	StageSelectionRemoved
	StagePaymentRecorded
	StageEnrollmentRecorded
)

var stageNames = map[Stage]string{
	StageNone:               "none",
	StageSeatReserved:       "seat_reserved",
	StageSelectionRemoved:   "selection_removed",
	StagePaymentRecorded:    "payment_recorded",
	StageEnrollmentRecorded: "enrollment_recorded",
}

func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s Stage) IsValid() bool {
	_, ok := stageNames[s]
	return ok
}
