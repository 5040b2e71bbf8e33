package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scadhub/portal/core/notification"
)

type notificationApi struct {
	svc  *notification.Service
	deps ServerDeps
}

func registerNotificationAPI(g *echo.Group, deps ServerDeps) {
	api := notificationApi{svc: deps.NotificationSvc, deps: deps}

	ng := g.Group("/notifications")
	ng.POST("", api.notify)
	ng.GET("", api.query)
	ng.PATCH("/:id/read", api.markRead)
	ng.DELETE("/:id", api.dismiss)
}

// Handlers

func (api *notificationApi) notify(ctx echo.Context) error {
	var data notification.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	n, err := api.svc.Notify(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "enqueueing notification")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *notificationApi) query(ctx echo.Context) error {
	email := ctx.QueryParam("email")
	role := ctx.QueryParam("role")

	ns, err := api.svc.QueryForRecipient(ctx.Request().Context(), email, role)
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	if ns == nil {
		ns = []notification.Notification{}
	}
	return ctx.JSON(http.StatusOK, ns)
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	n, err := api.svc.MarkRead(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "marking notification read")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *notificationApi) dismiss(ctx echo.Context) error {
	if err := api.svc.Dismiss(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "dismissing notification")
	}
	return ctx.NoContent(http.StatusNoContent)
}
