package catalog

import (
	"net/http"

	"github.com/google/uuid"
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
	read.GET("/bed-types", h.ListBedTypes)
	read.GET("/bed-types/:id", h.GetBedType)
	read.GET("/illnesses", h.ListIllnesses)

	// Catalog writes are an admin concern
	write := api.Group("", auth.RequireRole("admin"))
	write.POST("/bed-types", h.CreateBedType)
	write.PUT("/bed-types/:id", h.UpdateBedType)
	write.DELETE("/bed-types/:id", h.DeleteBedType)
	write.POST("/illnesses", h.CreateIllness)
	write.PUT("/illnesses/:id", h.UpdateIllness)
	write.DELETE("/illnesses/:id", h.DeleteIllness)
}

func (h *Handler) CreateBedType(c echo.Context) error {
	var bt BedType
	if err := c.Bind(&bt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateBedType(c.Request().Context(), &bt); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, bt)
}

func (h *Handler) GetBedType(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	bt, err := h.svc.GetBedType(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, bt)
}

func (h *Handler) UpdateBedType(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var bt BedType
	if err := c.Bind(&bt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bt.ID = id
	if err := h.svc.UpdateBedType(c.Request().Context(), &bt); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, bt)
}

func (h *Handler) DeleteBedType(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteBedType(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListBedTypes(c echo.Context) error {
	types, err := h.svc.ListBedTypes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, types)
}

func (h *Handler) CreateIllness(c echo.Context) error {
	var il Illness
	if err := c.Bind(&il); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateIllness(c.Request().Context(), &il); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, il)
}

func (h *Handler) UpdateIllness(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var il Illness
	if err := c.Bind(&il); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	il.ID = id
	if err := h.svc.UpdateIllness(c.Request().Context(), &il); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, il)
}

func (h *Handler) DeleteIllness(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteIllness(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListIllnesses(c echo.Context) error {
	illnesses, err := h.svc.ListIllnesses(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, illnesses)
}
