// Package internship holds internship listings, student applications and the
// application status lifecycle.
//
// Status graph:
//
//	pending ──► finalized ──► accepted ──► current ──► completed
//	    │            │            ▲
//	    ├────────────┴──► rejected│
//	    └─────────────────────────┘
//
// Any non-pending status may be reconsidered back to pending. Re-applying the
// current status is a permitted idempotent restamp.
package internship

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusFinalized Status = "finalized"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
)

// validTransitions lists every allowed forward (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusFinalized, StatusAccepted, StatusRejected},
	StatusFinalized: {StatusAccepted, StatusRejected},
	StatusAccepted:  {StatusCurrent},
	StatusCurrent:   {StatusCompleted},
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusFinalized, StatusAccepted, StatusRejected, StatusCurrent, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanTransition returns true when moving from → to is permitted by the state
// machine. Same-status restamps and reconsideration back to pending are
// always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if to == StatusPending {
		return true // reconsideration
	}
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
