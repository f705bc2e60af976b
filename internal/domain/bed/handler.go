package bed

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "receptionist", "doctor"))
	read.GET("/beds", h.ListBeds)
	read.GET("/beds/by-floor", h.ListBedsByFloor)
}

func (h *Handler) ListBeds(c echo.Context) error {
	beds, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, beds)
}

func (h *Handler) ListBedsByFloor(c echo.Context) error {
	groups, err := h.svc.GroupedByFloor(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, groups)
}
