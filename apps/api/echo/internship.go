package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/internship"
)

type internshipApi struct {
	svc  *internship.Service
	deps ServerDeps
}

func registerInternshipAPI(g *echo.Group, deps ServerDeps) {
	api := internshipApi{svc: deps.InternshipSvc, deps: deps}

	ig := g.Group("/internships")
	ig.POST("", api.create)
	ig.GET("", api.query)
	ig.GET("/:id", api.retrieve)
	ig.POST("/:id/applications", api.apply)
	ig.GET("/:id/applications", api.queryApplications)

	ag := ig.Group("/:id/applications/:email")
	ag.GET("", api.retrieveApplication)
	ag.PATCH("/status", api.updateStatus)
	ag.PUT("/evaluation", api.submitEvaluation)
	ag.PUT("/feedback", api.submitFeedback)

	g.GET("/applications", api.queryApplicationsByEmail)
}

// Handlers

func (api *internshipApi) create(ctx echo.Context) error {
	var data internship.NewInternship
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewInternship")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	in, err := api.svc.CreateInternship(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating internship")
	}
	return ctx.JSON(http.StatusCreated, in)
}

func (api *internshipApi) query(ctx echo.Context) error {
	ins, err := api.svc.QueryAllInternships(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying internships")
	}
	if ins == nil {
		ins = []internship.Internship{}
	}
	return ctx.JSON(http.StatusOK, ins)
}

func (api *internshipApi) retrieve(ctx echo.Context) error {
	in, err := api.svc.GetInternship(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding internship")
	}
	return ctx.JSON(http.StatusOK, in)
}

func (api *internshipApi) apply(ctx echo.Context) error {
	var data internship.NewApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	app, err := api.svc.Apply(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "submitting application")
	}
	return ctx.JSON(http.StatusCreated, app)
}

func (api *internshipApi) queryApplications(ctx echo.Context) error {
	apps, err := api.svc.QueryByInternship(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}
	if apps == nil {
		apps = []internship.Application{}
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *internshipApi) queryApplicationsByEmail(ctx echo.Context) error {
	apps, err := api.svc.QueryByEmail(ctx.Request().Context(), ctx.QueryParam("email"))
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}
	if apps == nil {
		apps = []internship.Application{}
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *internshipApi) retrieveApplication(ctx echo.Context) error {
	app, err := api.svc.GetApplication(ctx.Request().Context(), ctx.Param("id"), ctx.Param("email"))
	if err != nil {
		return errors.Wrap(err, "finding application")
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *internshipApi) updateStatus(ctx echo.Context) error {
	var data StatusUpdateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdateRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	target, err := internship.ParseStatus(data.Status)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: err.Error()})
	}

	app, err := api.svc.Transition(ctx.Request().Context(), ctx.Param("id"), ctx.Param("email"), target, data.ActorRole)
	if err != nil {
		return errors.Wrap(err, "updating application status")
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *internshipApi) submitEvaluation(ctx echo.Context) error {
	var data internship.Evaluation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Evaluation")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	app, err := api.svc.SubmitEvaluation(ctx.Request().Context(), ctx.Param("id"), ctx.Param("email"), data)
	if err != nil {
		return errors.Wrap(err, "submitting evaluation")
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *internshipApi) submitFeedback(ctx echo.Context) error {
	var data FeedbackRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeedbackRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	app, err := api.svc.SubmitFeedback(ctx.Request().Context(), ctx.Param("id"), ctx.Param("email"), data.Feedback)
	if err != nil {
		return errors.Wrap(err, "submitting feedback")
	}
	return ctx.JSON(http.StatusOK, app)
}

type (
	StatusUpdateRequest struct {
		Status    string `json:"status" validate:"required"`
		ActorRole string `json:"actor_role" validate:"required,oneof=student pro_student company scad_office"`
	}

	FeedbackRequest struct {
		Feedback string `json:"feedback" validate:"required"`
	}
)

func (sr *StatusUpdateRequest) Validate(validate *validator.Validate) error {
	sr.Status = core.CleanString(sr.Status, true /* lower */)
	return validate.Struct(sr)
}

func (fr *FeedbackRequest) Validate(validate *validator.Validate) error {
	fr.Feedback = core.CleanString(fr.Feedback)
	return validate.Struct(fr)
}
