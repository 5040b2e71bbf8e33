package records

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/internship"
)

type internshipRepository struct {
	db core.Store
}

var _ internship.Repository = (*internshipRepository)(nil)

func NewInternshipRepository(db core.Store) internship.Repository {
	return &internshipRepository{db: db}
}

func (repo *internshipRepository) CreateInternship(ctx context.Context, in internship.Internship) error {
	rec, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "encoding internship %s", in.ID)
	}
	return repo.db.Put(ctx, collInternships, in.ID, rec)
}

func (repo *internshipRepository) GetInternship(ctx context.Context, id string) (internship.Internship, error) {
	rec, err := repo.db.Get(ctx, collInternships, id)
	if err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return internship.Internship{}, internship.ErrInternshipNotFound
		}
		return internship.Internship{}, err
	}
	var in internship.Internship
	if err = json.Unmarshal(rec, &in); err != nil {
		return internship.Internship{}, errors.Wrapf(err, "decoding internship %s", id)
	}
	return in, nil
}

func (repo *internshipRepository) QueryAllInternships(ctx context.Context) ([]internship.Internship, error) {
	recs, err := repo.db.GetAll(ctx, collInternships)
	if err != nil {
		return nil, err
	}
	ins := make([]internship.Internship, 0, len(recs))
	for key, rec := range recs {
		var in internship.Internship
		if err = json.Unmarshal(rec, &in); err != nil {
			return nil, errors.Wrapf(err, "decoding internship %s", key)
		}
		ins = append(ins, in)
	}
	return ins, nil
}

func (repo *internshipRepository) GetApplication(ctx context.Context, internshipID, email string) (internship.Application, error) {
	key := internship.Application{InternshipID: internshipID, Email: email}.Key()
	rec, err := repo.db.Get(ctx, collApplications, key)
	if err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return internship.Application{}, internship.ErrNotFound
		}
		return internship.Application{}, err
	}
	var app internship.Application
	if err = json.Unmarshal(rec, &app); err != nil {
		return internship.Application{}, errors.Wrapf(err, "decoding application %s", key)
	}
	return app, nil
}

func (repo *internshipRepository) PutApplication(ctx context.Context, app internship.Application) error {
	rec, err := json.Marshal(app)
	if err != nil {
		return errors.Wrapf(err, "encoding application %s", app.Key())
	}
	return repo.db.Put(ctx, collApplications, app.Key(), rec)
}

func (repo *internshipRepository) QueryApplicationsByInternship(ctx context.Context, internshipID string) ([]internship.Application, error) {
	return repo.queryApplications(ctx, func(app internship.Application) bool {
		return app.InternshipID == internshipID
	})
}

func (repo *internshipRepository) QueryApplicationsByEmail(ctx context.Context, email string) ([]internship.Application, error) {
	return repo.queryApplications(ctx, func(app internship.Application) bool {
		return app.Email == email
	})
}

func (repo *internshipRepository) queryApplications(ctx context.Context, match func(internship.Application) bool) ([]internship.Application, error) {
	recs, err := repo.db.GetAll(ctx, collApplications)
	if err != nil {
		return nil, err
	}
	apps := make([]internship.Application, 0, len(recs))
	for key, rec := range recs {
		var app internship.Application
		if err = json.Unmarshal(rec, &app); err != nil {
			return nil, errors.Wrapf(err, "decoding application %s", key)
		}
		if match(app) {
			apps = append(apps, app)
		}
	}
	return apps, nil
}
