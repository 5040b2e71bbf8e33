package student_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scadhub/portal/core/student"
	"github.com/scadhub/portal/storage/records"
	inmemstore "github.com/scadhub/portal/storage/store/inmem"
	testutil "github.com/scadhub/portal/tests"
)

type appSourceStub struct {
	completed map[string][]student.CompletedInternship
	err       error
}

func (s appSourceStub) CompletedInternships(_ context.Context, email string) ([]student.CompletedInternship, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.completed[email], nil
}

func setup(t *testing.T, apps student.ApplicationSource) (*student.Service, student.Repository) {
	t.Helper()
	repo := records.NewStudentRepository(inmemstore.Open())
	if apps == nil {
		apps = appSourceStub{}
	}
	return student.NewService(repo, apps, testutil.Logger{}), repo
}

func TestService_TotalInternshipDays(t *testing.T) {
	ctx := context.Background()

	t.Run("sums internship experience entries only", func(t *testing.T) {
		svc, repo := setup(t, nil)
		testutil.CreateProfile(t, repo, "a@x.com", "Ayanda",
			student.ExperienceEntry{Type: student.ExperienceInternship, DateFrom: "2025-01-01", DateTo: "2025-01-31"}, // 30 days
			student.ExperienceEntry{Type: student.ExperienceJob, DateFrom: "2024-01-01", DateTo: "2024-12-31"},        // not counted
			student.ExperienceEntry{Type: student.ExperienceActivity, DateFrom: "2025-02-01", DateTo: "2025-02-10"},   // not counted
		)

		total, err := svc.TotalInternshipDays(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, 30, total)
	})

	t.Run("adds completed applications", func(t *testing.T) {
		apps := appSourceStub{completed: map[string][]student.CompletedInternship{
			"a@x.com": {
				{StartDate: "2025-03-01", EndDate: "2025-03-31"},                 // 30 days
				{StartDate: "2025-05-01", CompletionDate: "2025-05-31"},          // 30 days, completion date fallback
				{StartDate: "2025-06-01", EndDate: "", CompletionDate: ""},       // skipped, no end
				{StartDate: "2025-08-01", EndDate: "lol", CompletionDate: "lol"}, // skipped, malformed
			},
		}}
		svc, repo := setup(t, apps)
		testutil.CreateProfile(t, repo, "a@x.com", "Ayanda",
			student.ExperienceEntry{Type: student.ExperienceInternship, DateFrom: "2025-01-01", DateTo: "2025-01-31"}, // 30 days
		)

		total, err := svc.TotalInternshipDays(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, 90, total)
	})

	t.Run("missing profile contributes nothing", func(t *testing.T) {
		apps := appSourceStub{completed: map[string][]student.CompletedInternship{
			"ghost@x.com": {{StartDate: "2025-01-01", EndDate: "2025-02-15"}}, // 45 days
		}}
		svc, _ := setup(t, apps)

		total, err := svc.TotalInternshipDays(ctx, "ghost@x.com")
		require.NoError(t, err)
		assert.Equal(t, 45, total)
	})

	t.Run("negative spans clamp to zero", func(t *testing.T) {
		svc, repo := setup(t, nil)
		testutil.CreateProfile(t, repo, "b@x.com", "Buhle",
			student.ExperienceEntry{Type: student.ExperienceInternship, DateFrom: "2025-03-31", DateTo: "2025-01-01"},
			student.ExperienceEntry{Type: student.ExperienceInternship, DateFrom: "2025-01-01", DateTo: "2025-01-11"}, // 10 days
		)

		total, err := svc.TotalInternshipDays(ctx, "b@x.com")
		require.NoError(t, err)
		assert.Equal(t, 10, total)
	})

	t.Run("application source failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		svc, _ := setup(t, appSourceStub{err: boom})

		_, err := svc.TotalInternshipDays(ctx, "a@x.com")
		require.Error(t, err)
		assert.Equal(t, boom, errors.Cause(err))
	})
}

func TestService_IsPro(t *testing.T) {
	ctx := context.Background()

	t.Run("below threshold", func(t *testing.T) {
		svc, repo := setup(t, nil)
		testutil.CreateProfile(t, repo, "a@x.com", "Ayanda",
			student.ExperienceEntry{Type: student.ExperienceInternship, DateFrom: "2025-01-01", DateTo: "2025-03-31"}, // 89 days
		)

		pro, err := svc.IsPro(ctx, "a@x.com")
		require.NoError(t, err)
		assert.False(t, pro)
	})

	t.Run("at threshold", func(t *testing.T) {
		svc, repo := setup(t, nil)
		testutil.CreateProfile(t, repo, "a@x.com", "Ayanda",
			student.ExperienceEntry{Type: student.ExperienceInternship, DateFrom: "2025-01-01", DateTo: "2025-04-01"}, // 90 days
		)

		pro, err := svc.IsPro(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, pro)
	})

	t.Run("threshold reached across sources", func(t *testing.T) {
		apps := appSourceStub{completed: map[string][]student.CompletedInternship{
			"a@x.com": {{StartDate: "2025-05-01", EndDate: "2025-06-30"}}, // 60 days
		}}
		svc, repo := setup(t, apps)
		testutil.CreateProfile(t, repo, "a@x.com", "Ayanda",
			student.ExperienceEntry{Type: student.ExperienceInternship, DateFrom: "2025-01-01", DateTo: "2025-01-31"}, // 30 days
		)

		pro, err := svc.IsPro(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, pro)
	})
}

func TestService_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t, nil)

	prof, err := svc.Create(ctx, student.NewProfile{Email: "c@x.com", Name: "Cebo", Major: "CS", Semester: 3})
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", prof.Email)
	assert.False(t, prof.CreatedAt.IsZero())

	updated, err := svc.Update(ctx, "c@x.com", student.UpdateProfile{Major: "Design", Interests: []string{"ux"}})
	require.NoError(t, err)
	assert.Equal(t, "Design", updated.Major)
	assert.Equal(t, "Cebo", updated.Name) // untouched
	assert.Equal(t, []string{"ux"}, updated.Interests)

	_, err = svc.Update(ctx, "nobody@x.com", student.UpdateProfile{Name: "X"})
	assert.Equal(t, student.ErrNotFound, errors.Cause(err))
}
