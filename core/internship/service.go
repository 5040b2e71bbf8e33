package internship

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/notification"
	"github.com/scadhub/portal/core/student"
)

var (
	// errors
	ErrNotFound           = errors.New("application not found")
	ErrInternshipNotFound = errors.New("internship not found")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrNotCompleted       = errors.New("internship has not been completed yet")
)

type (
	Repository interface {
		CreateInternship(ctx context.Context, in Internship) error
		GetInternship(ctx context.Context, id string) (Internship, error)
		QueryAllInternships(ctx context.Context) ([]Internship, error)
		GetApplication(ctx context.Context, internshipID, email string) (Application, error)
		PutApplication(ctx context.Context, app Application) error
		QueryApplicationsByInternship(ctx context.Context, internshipID string) ([]Application, error)
		QueryApplicationsByEmail(ctx context.Context, email string) ([]Application, error)
	}

	// Notifier is the notification side-channel fed by status transitions.
	Notifier interface {
		Notify(ctx context.Context, nn notification.NewNotification) (notification.Notification, error)
	}

	// ProfileSource resolves applicant profiles for snapshot merging.
	ProfileSource interface {
		GetProfile(ctx context.Context, email string) (student.Profile, error)
	}

	Service struct {
		repo     Repository
		profiles ProfileSource
		notifier Notifier
		logger   core.Logger
	}
)

func NewService(repo Repository, profiles ProfileSource, notifier Notifier, logger core.Logger) *Service {
	return &Service{repo: repo, profiles: profiles, notifier: notifier, logger: logger}
}

func (svc *Service) CreateInternship(ctx context.Context, ni NewInternship) (Internship, error) {
	in := Internship{
		ID:          uuid.NewString(),
		Company:     CompanyRef{ID: ni.CompanyID, Name: ni.CompanyName},
		Position:    ni.Position,
		Description: ni.Description,
		Paid:        ni.Paid,
		PostedAt:    time.Now().UTC(),
	}
	if err := svc.repo.CreateInternship(ctx, in); err != nil {
		return Internship{}, err
	}
	return in, nil
}

func (svc *Service) GetInternship(ctx context.Context, id string) (Internship, error) {
	return svc.repo.GetInternship(ctx, id)
}

func (svc *Service) QueryAllInternships(ctx context.Context) ([]Internship, error) {
	return svc.repo.QueryAllInternships(ctx)
}

// Apply submits a new application for an internship with status pending.
// Applicant fields follow a fixed precedence: application-supplied value
// wins, then the profile value, then a literal default.
func (svc *Service) Apply(ctx context.Context, internshipID string, na NewApplication) (Application, error) {
	in, err := svc.repo.GetInternship(ctx, internshipID)
	if err != nil {
		return Application{}, err
	}

	var prof student.Profile
	if p, err := svc.profiles.GetProfile(ctx, na.Email); err == nil {
		prof = p
	} else if errors.Cause(err) != student.ErrNotFound {
		return Application{}, errors.Wrap(err, "fetching applicant profile")
	}

	now := time.Now().UTC()
	app := Application{
		InternshipID:      in.ID,
		Email:             na.Email,
		Status:            StatusPending,
		Company:           in.Company,
		Position:          in.Position,
		StudentName:       mergeField(na.StudentName, prof.Name, "Unknown Student"),
		Major:             mergeField(na.Major, prof.Major, ""),
		StartDate:         na.StartDate,
		EndDate:           na.EndDate,
		AppliedDate:       now,
		StatusUpdatedDate: now,
		Documents:         na.Documents,
	}
	if err = svc.repo.PutApplication(ctx, app); err != nil {
		return Application{}, err
	}

	_, err = svc.notifier.Notify(ctx, notification.NewNotification{
		Message:  fmt.Sprintf("%s applied to %q at %s", app.StudentName, app.Position, app.Company.Name),
		UserRole: core.RoleScadOffice,
	})
	if err != nil {
		svc.logger.Error(fmt.Sprintf("notifying office of new application: %v", err), err)
	}
	return app, nil
}

func (svc *Service) GetApplication(ctx context.Context, internshipID, email string) (Application, error) {
	return svc.repo.GetApplication(ctx, internshipID, core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryByInternship(ctx context.Context, internshipID string) ([]Application, error) {
	return svc.repo.QueryApplicationsByInternship(ctx, internshipID)
}

func (svc *Service) QueryByEmail(ctx context.Context, email string) ([]Application, error) {
	return svc.repo.QueryApplicationsByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Transition moves an application to target and emits exactly one
// notification: to the applicant when issued from the company/office side,
// to the office role when issued by the applicant.
func (svc *Service) Transition(ctx context.Context, internshipID, email string, target Status, actorRole string) (Application, error) {
	app, err := svc.GetApplication(ctx, internshipID, email)
	if err != nil {
		return Application{}, err
	}
	if !CanTransition(app.Status, target) {
		return Application{}, errors.Wrapf(ErrInvalidTransition, "%s -> %s", app.Status, target)
	}

	app.Status = target
	app.StatusUpdatedDate = time.Now().UTC()
	if target == StatusCompleted && app.CompletionDate == "" {
		app.CompletionDate = app.StatusUpdatedDate.Format(core.ISODateFormat)
	}
	if err = svc.repo.PutApplication(ctx, app); err != nil {
		return Application{}, err
	}

	nn := notification.NewNotification{
		Message: fmt.Sprintf("Your application for %q at %s is now %s", app.Position, app.Company.Name, target),
		Email:   app.Email,
	}
	if !core.IsStaffRole(actorRole) {
		nn = notification.NewNotification{
			Message:  fmt.Sprintf("%s set their application for %q at %s to %s", app.StudentName, app.Position, app.Company.Name, target),
			UserRole: core.RoleScadOffice,
		}
	}
	if _, err = svc.notifier.Notify(ctx, nn); err != nil {
		svc.logger.Error(fmt.Sprintf("notifying status change: %v", err), err)
	}
	return app, nil
}

// SubmitEvaluation overwrites the application's evaluation object.
// Idempotent; only completed applications may be evaluated.
func (svc *Service) SubmitEvaluation(ctx context.Context, internshipID, email string, eval Evaluation) (Application, error) {
	app, err := svc.GetApplication(ctx, internshipID, email)
	if err != nil {
		return Application{}, err
	}
	if app.Status != StatusCompleted {
		return Application{}, ErrNotCompleted
	}
	app.Evaluation = &eval
	if err = svc.repo.PutApplication(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// SubmitFeedback attaches free-text feedback to an application.
func (svc *Service) SubmitFeedback(ctx context.Context, internshipID, email, feedback string) (Application, error) {
	app, err := svc.GetApplication(ctx, internshipID, email)
	if err != nil {
		return Application{}, err
	}
	app.Feedback = feedback
	if err = svc.repo.PutApplication(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// CompletedInternships lists an identity's completed applications for
// duration aggregation.
func (svc *Service) CompletedInternships(ctx context.Context, email string) ([]student.CompletedInternship, error) {
	apps, err := svc.QueryByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	completed := make([]student.CompletedInternship, 0, len(apps))
	for _, app := range apps {
		if app.Status != StatusCompleted {
			continue
		}
		completed = append(completed, student.CompletedInternship{
			StartDate:      app.StartDate,
			EndDate:        app.EndDate,
			CompletionDate: app.CompletionDate,
		})
	}
	return completed, nil
}

func mergeField(supplied, fromProfile, fallback string) string {
	if supplied != "" {
		return supplied
	}
	if fromProfile != "" {
		return fromProfile
	}
	return fallback
}
