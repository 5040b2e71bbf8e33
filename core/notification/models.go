package notification

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scadhub/portal/core"
)

type (
	// Notification is a fire-and-forget message addressed to a single
	// identity, a whole role, or everyone — exactly one of the three.
	Notification struct {
		ID       string    `json:"id"`
		Message  string    `json:"message"`
		Email    string    `json:"email,omitempty"`
		UserRole string    `json:"user_role,omitempty"`
		Global   bool      `json:"global,omitempty"`
		Read     bool      `json:"read"`
		Link     string    `json:"link,omitempty"`
		Date     time.Time `json:"date"` // UTC
	}

	// NewNotification contains information needed to enqueue a Notification.
	NewNotification struct {
		Message  string `json:"message" validate:"required"`
		Email    string `json:"email" validate:"omitempty,email"`
		UserRole string `json:"user_role" validate:"omitempty,oneof=student pro_student company scad_office"`
		Global   bool   `json:"global"`
		Link     string `json:"link"`
	}
)

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Message = core.CleanString(nn.Message)
	nn.Email = core.CleanString(nn.Email, true /* lower */)
	return validate.Struct(nn)
}

// HasOneAddress reports whether exactly one addressing mode is set.
func (nn NewNotification) HasOneAddress() bool {
	var n int
	if nn.Email != "" {
		n++
	}
	if nn.UserRole != "" {
		n++
	}
	if nn.Global {
		n++
	}
	return n == 1
}

// AddressedTo reports whether the notification targets the given identity
// and role, directly or through a role/global broadcast.
func (n Notification) AddressedTo(email, role string) bool {
	if n.Global {
		return true
	}
	if n.Email != "" && n.Email == core.CleanString(email, true /* lower */) {
		return true
	}
	return n.UserRole != "" && n.UserRole == role
}
