package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/appointment"
)

type appointmentApi struct {
	svc  *appointment.Service
	deps ServerDeps
}

func registerAppointmentAPI(g *echo.Group, deps ServerDeps) {
	api := appointmentApi{svc: deps.AppointmentSvc, deps: deps}

	ag := g.Group("/appointments")
	ag.POST("", api.request)
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.POST("/:id/respond", api.respond)
}

// Handlers

func (api *appointmentApi) request(ctx echo.Context) error {
	var data AppointmentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AppointmentRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	appt, err := api.svc.Request(ctx.Request().Context(), data.RequesterRole, data.NewAppointment)
	if err != nil {
		return errors.Wrap(err, "requesting appointment")
	}
	return ctx.JSON(http.StatusCreated, appt)
}

func (api *appointmentApi) query(ctx echo.Context) error {
	appts, err := api.svc.QueryForIdentity(ctx.Request().Context(), ctx.QueryParam("identity"))
	if err != nil {
		return errors.Wrap(err, "querying appointments")
	}
	if appts == nil {
		appts = []appointment.Appointment{}
	}
	return ctx.JSON(http.StatusOK, appts)
}

func (api *appointmentApi) retrieve(ctx echo.Context) error {
	appt, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding appointment")
	}
	return ctx.JSON(http.StatusOK, appt)
}

func (api *appointmentApi) respond(ctx echo.Context) error {
	var data AppointmentResponse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AppointmentResponse")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	decision, err := appointment.ParseStatus(data.Decision)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "decision", Error: err.Error()})
	}

	appt, err := api.svc.Respond(ctx.Request().Context(), ctx.Param("id"), decision)
	if err != nil {
		return errors.Wrap(err, "responding to appointment")
	}
	return ctx.JSON(http.StatusOK, appt)
}

type (
	AppointmentRequest struct {
		appointment.NewAppointment
		RequesterRole string `json:"requester_role" validate:"required,oneof=student pro_student company scad_office"`
	}

	AppointmentResponse struct {
		Decision string `json:"decision" validate:"required"`
	}
)

func (ar *AppointmentRequest) Validate(validate *validator.Validate) error {
	if err := ar.NewAppointment.Validate(validate); err != nil {
		return err
	}
	return validate.StructPartial(ar, "RequesterRole")
}

func (ar *AppointmentResponse) Validate(validate *validator.Validate) error {
	ar.Decision = core.CleanString(ar.Decision, true /* lower */)
	return validate.Struct(ar)
}
