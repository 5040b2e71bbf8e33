package internship

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scadhub/portal/core"
)

type (
	// CompanyRef is a denormalized company snapshot carried by listings and
	// applications.
	CompanyRef struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Internship struct {
		ID          string     `json:"id"`
		Company     CompanyRef `json:"company"`
		Position    string     `json:"position"`
		Description string     `json:"description"`
		Paid        bool       `json:"paid"`
		PostedAt    time.Time  `json:"posted_at"` // UTC
	}

	Document struct {
		Name        string `json:"name" validate:"required"`
		ContentType string `json:"content_type"`
		SizeBytes   int64  `json:"size_bytes"`
		Content     string `json:"content"` // base64
	}

	// Evaluation is the structured rating a student submits once completed.
	Evaluation struct {
		Environment    int    `json:"environment" validate:"min=1,max=5"`
		Mentorship     int    `json:"mentorship" validate:"min=1,max=5"`
		Learning       int    `json:"learning" validate:"min=1,max=5"`
		Workload       int    `json:"workload" validate:"min=1,max=5"`
		Recommendation int    `json:"recommendation" validate:"min=1,max=5"`
		Comments       string `json:"comments"`
		WouldRecommend bool   `json:"would_recommend"`
	}

	// Application is one student's submission for one internship. It is keyed
	// by (internship ID, applicant email), so each status update is a
	// single-record write.
	Application struct {
		InternshipID      string      `json:"internship_id"`
		Email             string      `json:"email"`
		Status            Status      `json:"status"`
		Company           CompanyRef  `json:"company"`
		Position          string      `json:"position"`
		StudentName       string      `json:"student_name"`
		Major             string      `json:"major"`
		StartDate         string      `json:"start_date"`
		EndDate           string      `json:"end_date"`
		CompletionDate    string      `json:"completion_date"`
		AppliedDate       time.Time   `json:"applied_date"`        // UTC
		StatusUpdatedDate time.Time   `json:"status_updated_date"` // UTC
		Documents         []Document  `json:"documents"`
		Feedback          string      `json:"feedback"`
		Evaluation        *Evaluation `json:"evaluation,omitempty"`
	}
)

// Key is the storage key of an Application, unique per
// (internship, applicant) pair.
func (app Application) Key() string { return app.InternshipID + "/" + app.Email }

// NewInternship contains information needed to post a new listing.
type NewInternship struct {
	CompanyID   string `json:"company_id" validate:"required"`
	CompanyName string `json:"company_name" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Description string `json:"description"`
	Paid        bool   `json:"paid"`
}

func (ni *NewInternship) Validate(validate *validator.Validate) error {
	ni.CompanyName = core.CleanString(ni.CompanyName)
	ni.Position = core.CleanString(ni.Position)
	return validate.Struct(ni)
}

// NewApplication contains information needed to submit an application.
// StudentName and Major are optional; missing values fall back to the
// applicant's profile, then to a literal default.
type NewApplication struct {
	Email       string     `json:"email" validate:"required,email"`
	StudentName string     `json:"student_name"`
	Major       string     `json:"major"`
	StartDate   string     `json:"start_date" validate:"isodate"`
	EndDate     string     `json:"end_date" validate:"isodate"`
	Documents   []Document `json:"documents" validate:"omitempty,dive"`
}

func (na *NewApplication) Validate(validate *validator.Validate) error {
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.StudentName = core.CleanString(na.StudentName)
	return validate.Struct(na)
}
