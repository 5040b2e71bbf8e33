package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/internship"
	"github.com/scadhub/portal/core/student"
)

// NewConfig returns a Config suitable for tests.
func NewConfig() *core.Config {
	conf := &core.Config{
		Env:      "TEST",
		Debug:    true,
		TestMode: true,
		AppName:  "SCAD Portal",
		WorkDir:  core.Getwd(),
	}
	conf.DefaultFromEmail.Name = conf.AppName
	conf.DefaultFromEmail.Address = "noreply@test.cd"
	return conf
}

// Logger is a no-op core.Logger.
type Logger struct{}

var _ core.Logger = (*Logger)(nil)

func (Logger) Enable(bool)                  {}
func (Logger) Debug(string, ...interface{}) {}
func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
func (Logger) Fatal(string, ...interface{}) {}

func CreateProfile(
	t *testing.T,
	repo student.Repository,
	email, name string,
	experience ...student.ExperienceEntry,
) student.Profile {
	t.Helper()

	now := time.Now().UTC()
	prof := student.Profile{
		Email:      email,
		Name:       name,
		Experience: experience,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repo.PutProfile(context.Background(), prof); err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	return prof
}

func CreateInternship(
	t *testing.T,
	repo internship.Repository,
	id, companyName, position string,
) internship.Internship {
	t.Helper()

	in := internship.Internship{
		ID:       id,
		Company:  internship.CompanyRef{ID: "c-" + id, Name: companyName},
		Position: position,
		PostedAt: time.Now().UTC(),
	}
	if err := repo.CreateInternship(context.Background(), in); err != nil {
		t.Fatalf("CreateInternship() failed: %v", err)
	}
	return in
}

func CreateApplication(
	t *testing.T,
	repo internship.Repository,
	in internship.Internship,
	email string,
	status internship.Status,
	startDate, endDate string,
) internship.Application {
	t.Helper()

	now := time.Now().UTC()
	app := internship.Application{
		InternshipID:      in.ID,
		Email:             email,
		Status:            status,
		Company:           in.Company,
		Position:          in.Position,
		StartDate:         startDate,
		EndDate:           endDate,
		AppliedDate:       now,
		StatusUpdatedDate: now,
	}
	if err := repo.PutApplication(context.Background(), app); err != nil {
		t.Fatalf("CreateApplication() failed: %v", err)
	}
	return app
}
