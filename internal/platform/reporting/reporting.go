package reporting

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
)

// Stats is the dashboard snapshot: occupancy, capacity and revenue at a
// glance.
type Stats struct {
	ActivePatients     int       `json:"active_patients"`
	AvailableBeds      int       `json:"available_beds"`
	TotalRevenue       float64   `json:"total_revenue"`
	TodaysAppointments int       `json:"todays_appointments"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// Handler serves dashboard statistics. It reads straight off the pool; the
// numbers are aggregates and need no domain logic in front of them.
type Handler struct {
	pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/dashboard", auth.RequireRole("admin", "receptionist"))
	g.GET("/stats", h.GetStats)
}

// GetStats gathers all four figures in a single round trip.
func (h *Handler) GetStats(c echo.Context) error {
	stats := Stats{GeneratedAt: time.Now().UTC()}

	err := h.pool.QueryRow(c.Request().Context(), `
		SELECT
			(SELECT COUNT(*) FROM patients WHERE discharged_date IS NULL),
			(SELECT COUNT(*) FROM beds WHERE status = 'Available'),
			(SELECT COALESCE(SUM(total), 0) FROM billing),
			(SELECT COUNT(*) FROM appointments WHERE date = CURRENT_DATE AND status = 'Scheduled')`).
		Scan(&stats.ActivePatients, &stats.AvailableBeds, &stats.TotalRevenue, &stats.TodaysAppointments)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to gather dashboard stats")
	}

	return c.JSON(http.StatusOK, stats)
}
