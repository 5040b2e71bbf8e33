package records

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/student"
)

type studentRepository struct {
	db core.Store
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db core.Store) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) GetProfile(ctx context.Context, email string) (student.Profile, error) {
	rec, err := repo.db.Get(ctx, collProfiles, email)
	if err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return student.Profile{}, student.ErrNotFound
		}
		return student.Profile{}, err
	}
	var prof student.Profile
	if err = json.Unmarshal(rec, &prof); err != nil {
		return student.Profile{}, errors.Wrapf(err, "decoding profile %s", email)
	}
	return prof, nil
}

func (repo *studentRepository) PutProfile(ctx context.Context, prof student.Profile) error {
	rec, err := json.Marshal(prof)
	if err != nil {
		return errors.Wrapf(err, "encoding profile %s", prof.Email)
	}
	return repo.db.Put(ctx, collProfiles, prof.Email, rec)
}

func (repo *studentRepository) QueryAllProfiles(ctx context.Context) ([]student.Profile, error) {
	recs, err := repo.db.GetAll(ctx, collProfiles)
	if err != nil {
		return nil, err
	}
	profs := make([]student.Profile, 0, len(recs))
	for key, rec := range recs {
		var prof student.Profile
		if err = json.Unmarshal(rec, &prof); err != nil {
			return nil, errors.Wrapf(err, "decoding profile %s", key)
		}
		profs = append(profs, prof)
	}
	return profs, nil
}
