package appointment

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scadhub/portal/core"
)

type Status string

// pending is the only non-terminal state; accepted and rejected are final.
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// CanRespond returns true when a pending appointment may be moved to decision.
func CanRespond(from, decision Status) bool {
	return from == StatusPending && (decision == StatusAccepted || decision == StatusRejected)
}

// Appointment is a scheduling request between a student and the office.
// Email is the requesting student's identity and is empty when the office
// initiated the request; DirectedTo is the office's target student.
type Appointment struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email,omitempty"`
	Purpose           string    `json:"purpose"`
	Date              time.Time `json:"date"`
	Online            bool      `json:"online"`
	Status            Status    `json:"status"`
	DirectedTo        string    `json:"directed_to,omitempty"`
	CreatedAt         time.Time `json:"created_at"`          // UTC
	StatusUpdatedDate time.Time `json:"status_updated_date"` // UTC
}

// NewAppointment contains information needed to request an appointment.
type NewAppointment struct {
	Name       string    `json:"name"`
	Email      string    `json:"email" validate:"omitempty,email"`
	Purpose    string    `json:"purpose" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
	Online     bool      `json:"online"`
	DirectedTo string    `json:"directed_to" validate:"omitempty,email"`
}

func (na *NewAppointment) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.DirectedTo = core.CleanString(na.DirectedTo, true /* lower */)
	return validate.Struct(na)
}
