package appointment

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "receptionist", "doctor"))
	g.GET("/appointments", h.List)
	g.GET("/appointments/booked-slots", h.BookedSlots)
	g.GET("/appointments/:id", h.Get)

	write := api.Group("", auth.RequireRole("admin", "receptionist"))
	write.POST("/appointments", h.Create)
	write.POST("/appointments/:id/cancel", h.Cancel)
}

type createRequest struct {
	PatientName string    `json:"patient_name"`
	Phone       string    `json:"phone"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	Date        string    `json:"date"`
	Slot        string    `json:"slot"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	a := &Appointment{
		PatientName: req.PatientName,
		Phone:       req.Phone,
		DoctorID:    req.DoctorID,
		Date:        date,
		Slot:        req.Slot,
	}
	if err := h.svc.Create(c.Request().Context(), a); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns a day's appointments, optionally narrowed to one doctor.
func (h *Handler) List(c echo.Context) error {
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	ctx := c.Request().Context()
	if doctorParam := c.QueryParam("doctor_id"); doctorParam != "" {
		doctorID, err := uuid.Parse(doctorParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
		}
		appts, err := h.svc.ListByDoctorAndDate(ctx, doctorID, date)
		if err != nil {
			return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(http.StatusOK, appts)
	}

	appts, err := h.svc.ListByDate(ctx, date)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) BookedSlots(c echo.Context) error {
	doctorID, err := uuid.Parse(c.QueryParam("doctor_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	slots, err := h.svc.BookedSlots(c.Request().Context(), doctorID, date)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, slots)
}
