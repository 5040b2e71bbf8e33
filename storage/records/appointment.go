package records

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/appointment"
)

type appointmentRepository struct {
	db core.Store
}

var _ appointment.Repository = (*appointmentRepository)(nil)

func NewAppointmentRepository(db core.Store) appointment.Repository {
	return &appointmentRepository{db: db}
}

func (repo *appointmentRepository) CreateAppointment(ctx context.Context, appt appointment.Appointment) error {
	return repo.put(ctx, appt)
}

func (repo *appointmentRepository) PutAppointment(ctx context.Context, appt appointment.Appointment) error {
	return repo.put(ctx, appt)
}

func (repo *appointmentRepository) put(ctx context.Context, appt appointment.Appointment) error {
	rec, err := json.Marshal(appt)
	if err != nil {
		return errors.Wrapf(err, "encoding appointment %s", appt.ID)
	}
	return repo.db.Put(ctx, collAppointments, appt.ID, rec)
}

func (repo *appointmentRepository) GetAppointment(ctx context.Context, id string) (appointment.Appointment, error) {
	rec, err := repo.db.Get(ctx, collAppointments, id)
	if err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return appointment.Appointment{}, appointment.ErrNotFound
		}
		return appointment.Appointment{}, err
	}
	var appt appointment.Appointment
	if err = json.Unmarshal(rec, &appt); err != nil {
		return appointment.Appointment{}, errors.Wrapf(err, "decoding appointment %s", id)
	}
	return appt, nil
}

func (repo *appointmentRepository) QueryAllAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	recs, err := repo.db.GetAll(ctx, collAppointments)
	if err != nil {
		return nil, err
	}
	appts := make([]appointment.Appointment, 0, len(recs))
	for key, rec := range recs {
		var appt appointment.Appointment
		if err = json.Unmarshal(rec, &appt); err != nil {
			return nil, errors.Wrapf(err, "decoding appointment %s", key)
		}
		appts = append(appts, appt)
	}
	return appts, nil
}
