package internship_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/internship"
	"github.com/scadhub/portal/core/notification"
	"github.com/scadhub/portal/core/student"
	"github.com/scadhub/portal/storage/records"
	inmemstore "github.com/scadhub/portal/storage/store/inmem"
	testutil "github.com/scadhub/portal/tests"
)

type notifierStub struct {
	sent []notification.NewNotification
	err  error
}

func (n *notifierStub) Notify(_ context.Context, nn notification.NewNotification) (notification.Notification, error) {
	if n.err != nil {
		return notification.Notification{}, n.err
	}
	n.sent = append(n.sent, nn)
	return notification.Notification{Message: nn.Message}, nil
}

type profileSourceStub struct {
	profiles map[string]student.Profile
}

func (s profileSourceStub) GetProfile(_ context.Context, email string) (student.Profile, error) {
	if prof, ok := s.profiles[email]; ok {
		return prof, nil
	}
	return student.Profile{}, student.ErrNotFound
}

func setup(t *testing.T, profiles map[string]student.Profile) (*internship.Service, internship.Repository, *notifierStub) {
	t.Helper()
	repo := records.NewInternshipRepository(inmemstore.Open())
	notifier := &notifierStub{}
	svc := internship.NewService(repo, profileSourceStub{profiles: profiles}, notifier, testutil.Logger{})
	return svc, repo, notifier
}

func TestService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("merges applicant fields from profile", func(t *testing.T) {
		svc, repo, notifier := setup(t, map[string]student.Profile{
			"b@y.com": {Email: "b@y.com", Name: "Bongi", Major: "CS"},
		})
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")

		app, err := svc.Apply(ctx, in.ID, internship.NewApplication{Email: "b@y.com"})
		require.NoError(t, err)
		assert.Equal(t, internship.StatusPending, app.Status)
		assert.Equal(t, "Bongi", app.StudentName)
		assert.Equal(t, "CS", app.Major)
		assert.Equal(t, "Acme", app.Company.Name)
		assert.False(t, app.AppliedDate.IsZero())

		// office is notified, by role only
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, core.RoleScadOffice, notifier.sent[0].UserRole)
		assert.Empty(t, notifier.sent[0].Email)
	})

	t.Run("supplied fields win over profile", func(t *testing.T) {
		svc, repo, _ := setup(t, map[string]student.Profile{
			"b@y.com": {Email: "b@y.com", Name: "Bongi", Major: "CS"},
		})
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")

		app, err := svc.Apply(ctx, in.ID, internship.NewApplication{Email: "b@y.com", StudentName: "B. Dlamini", Major: "Design"})
		require.NoError(t, err)
		assert.Equal(t, "B. Dlamini", app.StudentName)
		assert.Equal(t, "Design", app.Major)
	})

	t.Run("unknown applicant falls back to default name", func(t *testing.T) {
		svc, repo, _ := setup(t, nil)
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")

		app, err := svc.Apply(ctx, in.ID, internship.NewApplication{Email: "ghost@y.com"})
		require.NoError(t, err)
		assert.Equal(t, "Unknown Student", app.StudentName)
	})

	t.Run("unknown internship", func(t *testing.T) {
		svc, _, _ := setup(t, nil)

		_, err := svc.Apply(ctx, "nope", internship.NewApplication{Email: "b@y.com"})
		assert.Equal(t, internship.ErrInternshipNotFound, errors.Cause(err))
	})
}

func TestService_Transition(t *testing.T) {
	ctx := context.Background()

	t.Run("walks the full lifecycle", func(t *testing.T) {
		svc, repo, _ := setup(t, nil)
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
		testutil.CreateApplication(t, repo, in, "b@y.com", internship.StatusPending, "2025-06-01", "2025-08-30")

		for _, target := range []internship.Status{
			internship.StatusFinalized,
			internship.StatusAccepted,
			internship.StatusCurrent,
			internship.StatusCompleted,
		} {
			app, err := svc.Transition(ctx, in.ID, "b@y.com", target, core.RoleCompany)
			require.NoError(t, err, "transition to %s", target)
			assert.Equal(t, target, app.Status)
		}

		app, err := svc.GetApplication(ctx, in.ID, "b@y.com")
		require.NoError(t, err)
		assert.Equal(t, internship.StatusCompleted, app.Status)
		assert.NotEmpty(t, app.CompletionDate)
	})

	t.Run("rejects an illegal jump", func(t *testing.T) {
		svc, repo, _ := setup(t, nil)
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
		testutil.CreateApplication(t, repo, in, "b@y.com", internship.StatusPending, "", "")

		_, err := svc.Transition(ctx, in.ID, "b@y.com", internship.StatusCurrent, core.RoleCompany)
		assert.Equal(t, internship.ErrInvalidTransition, errors.Cause(err))

		// stored status untouched
		app, err := svc.GetApplication(ctx, in.ID, "b@y.com")
		require.NoError(t, err)
		assert.Equal(t, internship.StatusPending, app.Status)
	})

	t.Run("staff transition notifies the applicant", func(t *testing.T) {
		svc, repo, notifier := setup(t, nil)
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
		testutil.CreateApplication(t, repo, in, "b@y.com", internship.StatusPending, "", "")

		app, err := svc.Transition(ctx, in.ID, "b@y.com", internship.StatusAccepted, core.RoleCompany)
		require.NoError(t, err)
		assert.Equal(t, internship.StatusAccepted, app.Status)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, "b@y.com", notifier.sent[0].Email)
		assert.Empty(t, notifier.sent[0].UserRole)
	})

	t.Run("restamping the same status", func(t *testing.T) {
		svc, repo, _ := setup(t, nil)
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
		testutil.CreateApplication(t, repo, in, "b@y.com", internship.StatusFinalized, "", "")

		first, err := svc.Transition(ctx, in.ID, "b@y.com", internship.StatusFinalized, core.RoleCompany)
		require.NoError(t, err)
		second, err := svc.Transition(ctx, in.ID, "b@y.com", internship.StatusFinalized, core.RoleCompany)
		require.NoError(t, err)
		assert.Equal(t, internship.StatusFinalized, second.Status)
		assert.False(t, second.StatusUpdatedDate.Before(first.StatusUpdatedDate))
	})

	t.Run("student transition notifies the office", func(t *testing.T) {
		svc, repo, notifier := setup(t, nil)
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
		testutil.CreateApplication(t, repo, in, "b@y.com", internship.StatusCurrent, "", "")

		_, err := svc.Transition(ctx, in.ID, "b@y.com", internship.StatusCompleted, core.RoleStudent)
		require.NoError(t, err)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, core.RoleScadOffice, notifier.sent[0].UserRole)
		assert.Empty(t, notifier.sent[0].Email)
	})

	t.Run("notifier failure does not fail the transition", func(t *testing.T) {
		svc, repo, notifier := setup(t, nil)
		notifier.err = errors.New("smtp down")
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
		testutil.CreateApplication(t, repo, in, "b@y.com", internship.StatusPending, "", "")

		app, err := svc.Transition(ctx, in.ID, "b@y.com", internship.StatusFinalized, core.RoleCompany)
		require.NoError(t, err)
		assert.Equal(t, internship.StatusFinalized, app.Status)
	})
}

func TestService_SubmitEvaluation(t *testing.T) {
	ctx := context.Background()
	eval := internship.Evaluation{Environment: 4, Mentorship: 5, Learning: 4, Workload: 3, Recommendation: 5, WouldRecommend: true}

	t.Run("requires a completed internship", func(t *testing.T) {
		svc, repo, _ := setup(t, nil)
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
		testutil.CreateApplication(t, repo, in, "b@y.com", internship.StatusCurrent, "", "")

		_, err := svc.SubmitEvaluation(ctx, in.ID, "b@y.com", eval)
		assert.Equal(t, internship.ErrNotCompleted, errors.Cause(err))
	})

	t.Run("overwrites on resubmission", func(t *testing.T) {
		svc, repo, _ := setup(t, nil)
		in := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
		testutil.CreateApplication(t, repo, in, "b@y.com", internship.StatusCompleted, "", "")

		_, err := svc.SubmitEvaluation(ctx, in.ID, "b@y.com", eval)
		require.NoError(t, err)

		redo := eval
		redo.Comments = "second thoughts"
		app, err := svc.SubmitEvaluation(ctx, in.ID, "b@y.com", redo)
		require.NoError(t, err)
		require.NotNil(t, app.Evaluation)
		assert.Equal(t, "second thoughts", app.Evaluation.Comments)
	})
}

func TestService_CompletedInternships(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup(t, nil)

	in1 := testutil.CreateInternship(t, repo, "7", "Acme", "Backend Intern")
	in2 := testutil.CreateInternship(t, repo, "8", "Globex", "Data Intern")
	testutil.CreateApplication(t, repo, in1, "b@y.com", internship.StatusCompleted, "2025-01-01", "2025-03-01")
	testutil.CreateApplication(t, repo, in2, "b@y.com", internship.StatusRejected, "2025-04-01", "2025-05-01")
	testutil.CreateApplication(t, repo, in2, "other@y.com", internship.StatusCompleted, "2025-04-01", "2025-05-01")

	completed, err := svc.CompletedInternships(ctx, "b@y.com")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "2025-01-01", completed[0].StartDate)
	assert.Equal(t, "2025-03-01", completed[0].EndDate)
}
