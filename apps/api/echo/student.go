package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scadhub/portal/core/student"
)

type studentApi struct {
	svc  *student.Service
	deps ServerDeps
}

func registerStudentAPI(g *echo.Group, deps ServerDeps) {
	api := studentApi{svc: deps.StudentSvc, deps: deps}

	sg := g.Group("/students")
	sg.POST("", api.create)
	sg.GET("", api.query)

	dg := sg.Group("/:email")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.GET("/eligibility", api.eligibility)
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProfile")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	prof, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating profile")
	}
	return ctx.JSON(http.StatusCreated, prof)
}

func (api *studentApi) query(ctx echo.Context) error {
	profs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying profiles")
	}
	if profs == nil {
		profs = []student.Profile{}
	}
	return ctx.JSON(http.StatusOK, profs)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	prof, err := api.svc.GetProfile(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		return errors.Wrap(err, "finding profile")
	}
	return ctx.JSON(http.StatusOK, prof)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	prof, err := api.svc.Update(ctx.Request().Context(), ctx.Param("email"), data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, prof)
}

func (api *studentApi) eligibility(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	email := ctx.Param("email")

	total, err := api.svc.TotalInternshipDays(reqCtx, email)
	if err != nil {
		return errors.Wrap(err, "aggregating internship days")
	}
	return ctx.JSON(http.StatusOK, EligibilityResponse{
		Email:     email,
		TotalDays: total,
		Pro:       total >= student.ProThresholdDays,
	})
}

type EligibilityResponse struct {
	Email     string `json:"email"`
	TotalDays int    `json:"total_days"`
	Pro       bool   `json:"pro"`
}
