package appointment

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

const officeDisplayName = "SCAD Office"

var (
	// errors
	ErrNotFound          = errors.New("appointment not found")
	ErrStudentNotFound   = errors.New("no student with this email exists")
	ErrNotEligible       = errors.New("student is not eligible for appointments")
	ErrInvalidTransition = errors.New("appointment has already been responded to")
)

type (
	Repository interface {
		CreateAppointment(ctx context.Context, appt Appointment) error
		GetAppointment(ctx context.Context, id string) (Appointment, error)
		PutAppointment(ctx context.Context, appt Appointment) error
		QueryAllAppointments(ctx context.Context) ([]Appointment, error)
	}

	// StudentDirectory resolves profiles and PRO eligibility for office-side
	// validation.
	StudentDirectory interface {
		GetProfile(ctx context.Context, email string) (student.Profile, error)
		IsPro(ctx context.Context, email string) (bool, error)
	}

	Notifier interface {
		Notify(ctx context.Context, nn notification.NewNotification) (notification.Notification, error)
	}

	Service struct {
		repo     Repository
		students StudentDirectory
		notifier Notifier
		logger   core.Logger
	}
)

func NewService(repo Repository, students StudentDirectory, notifier Notifier, logger core.Logger) *Service {
	return &Service{repo: repo, students: students, notifier: notifier, logger: logger}
}

// Request creates a pending appointment. Office-initiated requests are
// validated: the target must have a profile and must be a PRO student.
// Student-initiated requests carry no target validation; the requester's
// display name is stamped from their profile when one exists.
func (svc *Service) Request(ctx context.Context, requesterRole string, na NewAppointment) (Appointment, error) {
	now := time.Now().UTC()
	appt := Appointment{
		ID:                uuid.NewString(),
		Name:              na.Name,
		Purpose:           na.Purpose,
		Date:              na.Date,
		Online:            na.Online,
		Status:            StatusPending,
		CreatedAt:         now,
		StatusUpdatedDate: now,
	}

	counterpart := notification.NewNotification{
		Message: fmt.Sprintf("New appointment request: %s", na.Purpose),
	}

	if requesterRole == core.RoleScadOffice {
		if _, err := svc.students.GetProfile(ctx, na.DirectedTo); err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return Appointment{}, ErrStudentNotFound
			}
			return Appointment{}, errors.Wrap(err, "resolving appointment target")
		}
		pro, err := svc.students.IsPro(ctx, na.DirectedTo)
		if err != nil {
			return Appointment{}, errors.Wrap(err, "checking target eligibility")
		}
		if !pro {
			return Appointment{}, ErrNotEligible
		}
		appt.DirectedTo = na.DirectedTo
		if appt.Name == "" {
			appt.Name = officeDisplayName
		}
		counterpart.Email = na.DirectedTo
	} else {
		appt.Email = na.Email
		if prof, err := svc.students.GetProfile(ctx, na.Email); err == nil {
			appt.Name = prof.Name
		}
		counterpart.UserRole = core.RoleScadOffice
	}

	if err := svc.repo.CreateAppointment(ctx, appt); err != nil {
		return Appointment{}, err
	}
	if _, err := svc.notifier.Notify(ctx, counterpart); err != nil {
		svc.logger.Error(fmt.Sprintf("notifying appointment request: %v", err), err)
	}
	return appt, nil
}

// Respond accepts or rejects a pending appointment and notifies the party
// that did not respond.
func (svc *Service) Respond(ctx context.Context, id string, decision Status) (Appointment, error) {
	appt, err := svc.repo.GetAppointment(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if !CanRespond(appt.Status, decision) {
		return Appointment{}, errors.Wrapf(ErrInvalidTransition, "%s -> %s", appt.Status, decision)
	}

	appt.Status = decision
	appt.StatusUpdatedDate = time.Now().UTC()
	if err = svc.repo.PutAppointment(ctx, appt); err != nil {
		return Appointment{}, err
	}

	nn := notification.NewNotification{
		Message: fmt.Sprintf("Your appointment %q was %s", appt.Purpose, decision),
	}
	if appt.Email != "" {
		nn.Email = appt.Email
	} else {
		nn.Email = appt.DirectedTo
	}
	if _, err = svc.notifier.Notify(ctx, nn); err != nil {
		svc.logger.Error(fmt.Sprintf("notifying appointment response: %v", err), err)
	}
	return appt, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Appointment, error) {
	return svc.repo.GetAppointment(ctx, id)
}

// QueryForIdentity lists appointments the identity is party to, either as
// requester or as target.
func (svc *Service) QueryForIdentity(ctx context.Context, email string) ([]Appointment, error) {
	email = core.CleanString(email, true /* lower */)
	all, err := svc.repo.QueryAllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]Appointment, 0, len(all))
	for _, appt := range all {
		if appt.Email == email || appt.DirectedTo == email {
			mine = append(mine, appt)
		}
	}
	return mine, nil
}
