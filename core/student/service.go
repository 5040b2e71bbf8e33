package student

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
)

// ProThresholdDays is the aggregated internship duration (in days) at which a
// student becomes a PRO student. Fixed at three months by the domain.
const ProThresholdDays = 90

var (
	// errors
	ErrNotFound = errors.New("student profile not found")
)

type (
	Repository interface {
		GetProfile(ctx context.Context, email string) (Profile, error)
		PutProfile(ctx context.Context, prof Profile) error
		QueryAllProfiles(ctx context.Context) ([]Profile, error)
	}

	// CompletedInternship is one finished application contributing to the
	// aggregated duration.
	CompletedInternship struct {
		StartDate      string
		EndDate        string
		CompletionDate string
	}

	// ApplicationSource lists an identity's completed internship applications.
	ApplicationSource interface {
		CompletedInternships(ctx context.Context, email string) ([]CompletedInternship, error)
	}

	Service struct {
		repo   Repository
		apps   ApplicationSource
		logger core.Logger
	}
)

func NewService(repo Repository, apps ApplicationSource, logger core.Logger) *Service {
	return &Service{repo: repo, apps: apps, logger: logger}
}

// BindApplicationSource sets the completed-applications source after
// construction. Must be called before serving traffic when the source itself
// depends on this service.
func (svc *Service) BindApplicationSource(apps ApplicationSource) {
	svc.apps = apps
}

func (svc *Service) GetProfile(ctx context.Context, email string) (Profile, error) {
	return svc.repo.GetProfile(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Profile, error) {
	return svc.repo.QueryAllProfiles(ctx)
}

func (svc *Service) Create(ctx context.Context, np NewProfile) (Profile, error) {
	now := time.Now().UTC()
	prof := Profile{
		Email:      np.Email,
		Name:       np.Name,
		Major:      np.Major,
		Semester:   np.Semester,
		Interests:  np.Interests,
		Experience: np.Experience,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := svc.repo.PutProfile(ctx, prof); err != nil {
		return Profile{}, err
	}
	return prof, nil
}

func (svc *Service) Update(ctx context.Context, email string, up UpdateProfile) (Profile, error) {
	prof, err := svc.GetProfile(ctx, email)
	if err != nil {
		return Profile{}, err
	}
	if up.Name != "" {
		prof.Name = up.Name
	}
	if up.Major != "" {
		prof.Major = up.Major
	}
	if up.Semester != 0 {
		prof.Semester = up.Semester
	}
	if up.Interests != nil {
		prof.Interests = up.Interests
	}
	if up.Experience != nil {
		prof.Experience = up.Experience
	}
	prof.UpdatedAt = time.Now().UTC()

	if err = svc.repo.PutProfile(ctx, prof); err != nil {
		return Profile{}, err
	}
	return prof, nil
}

// TotalInternshipDays aggregates an identity's prior internship duration in
// days across profile experience entries and completed applications.
// Overlapping ranges double-count; negative spans clamp to zero. A missing
// profile contributes nothing; a storage failure propagates, it is never
// reported as zero days.
func (svc *Service) TotalInternshipDays(ctx context.Context, email string) (int, error) {
	var total int

	prof, err := svc.GetProfile(ctx, email)
	switch errors.Cause(err) {
	case nil:
		for _, entry := range prof.Experience {
			if entry.Type != ExperienceInternship {
				continue
			}
			days, ok := svc.spanDays(email, entry.DateFrom, entry.DateTo)
			if ok {
				total += days
			}
		}
	case ErrNotFound:
		// no profile, no experience contribution
	default:
		return 0, errors.Wrap(err, "fetching profile")
	}

	completed, err := svc.apps.CompletedInternships(ctx, email)
	if err != nil {
		return 0, errors.Wrap(err, "fetching completed applications")
	}
	for _, app := range completed {
		end := app.EndDate
		if end == "" {
			end = app.CompletionDate
		}
		days, ok := svc.spanDays(email, app.StartDate, end)
		if ok {
			total += days
		}
	}
	return total, nil
}

// IsPro reports whether the identity meets the PRO eligibility threshold.
func (svc *Service) IsPro(ctx context.Context, email string) (bool, error) {
	total, err := svc.TotalInternshipDays(ctx, email)
	if err != nil {
		return false, err
	}
	return total >= ProThresholdDays, nil
}

// spanDays returns the day count between two ISO dates, clamped at zero.
// Entries with a missing or malformed date are skipped rather than failing
// the whole aggregation.
func (svc *Service) spanDays(email, from, to string) (int, bool) {
	if from == "" || to == "" {
		return 0, false
	}
	start, err := time.Parse(core.ISODateFormat, from)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("skipping experience entry with malformed date %q for %s", from, email))
		return 0, false
	}
	end, err := time.Parse(core.ISODateFormat, to)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("skipping experience entry with malformed date %q for %s", to, email))
		return 0, false
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0, true
	}
	return days, true
}
