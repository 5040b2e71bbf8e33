package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scadhub/portal/core"
)

// Experience entry types
const (
	ExperienceInternship = "internship"
	ExperienceJob        = "job"
	ExperienceActivity   = "activity"
)

type (
	// ExperienceEntry is a prior stay embedded in a Profile. Only internship
	// entries with both dates set count towards PRO eligibility.
	ExperienceEntry struct {
		Type     string `json:"type" validate:"required,oneof=internship job activity"`
		Company  string `json:"company"`
		Position string `json:"position"`
		DateFrom string `json:"date_from" validate:"isodate"`
		DateTo   string `json:"date_to" validate:"isodate"`
	}

	Profile struct {
		Email      string            `json:"email"`
		Name       string            `json:"name"`
		Major      string            `json:"major"`
		Semester   int               `json:"semester"`
		Interests  []string          `json:"interests"`
		Experience []ExperienceEntry `json:"experience"`
		CreatedAt  time.Time         `json:"created_at"` // UTC
		UpdatedAt  time.Time         `json:"updated_at"` // UTC
	}
)

// NewProfile contains information needed to create a new Profile.
type NewProfile struct {
	Email      string            `json:"email" validate:"required,email"`
	Name       string            `json:"name" validate:"required"`
	Major      string            `json:"major"`
	Semester   int               `json:"semester" validate:"omitempty,min=1,max=10"`
	Interests  []string          `json:"interests"`
	Experience []ExperienceEntry `json:"experience" validate:"omitempty,dive"`
}

func (np *NewProfile) Validate(validate *validator.Validate) error {
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.Name = core.CleanString(np.Name)
	return validate.Struct(np)
}

// UpdateProfile defines what information may be provided to modify an existing
// Profile. Empty fields keep their stored value.
type UpdateProfile struct {
	Name       string            `json:"name"`
	Major      string            `json:"major"`
	Semester   int               `json:"semester" validate:"omitempty,min=1,max=10"`
	Interests  []string          `json:"interests"`
	Experience []ExperienceEntry `json:"experience" validate:"omitempty,dive"`
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.Name = core.CleanString(up.Name)
	return validate.Struct(up)
}
