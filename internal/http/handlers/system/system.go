// Package system serves the endpoints that are not part of the student
// API: the root banner and the health report.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/aanand-mishra/student-records-api/internal/http/middleware"
	"github.com/aanand-mishra/student-records-api/internal/storage"
	"github.com/aanand-mishra/student-records-api/internal/utils/response"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

// Root handles GET /
func Root() echo.HandlerFunc {
	return func(c echo.Context) error {
		return response.WriteJSON(c.Response(), http.StatusOK,
			response.Banner{Message: response.MessageServerRunning})
	}
}

// Check is the result of probing one dependency.
type Check struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// Health is the body of GET /status.
type Health struct {
	Status      string           `json:"status"`
	Timestamp   time.Time        `json:"timestamp"`
	Environment string           `json:"environment"`
	Checks      map[string]Check `json:"checks"`
}

// CheckHealth handles GET /status. It answers 200 when the store responds
// to a ping within five seconds and 503 otherwise.
func CheckHealth(store storage.Storage, env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := middleware.GetLogger(c).With().
			Str("operation", "health_check").
			Logger()

		report := Health{
			Status:      "healthy",
			Timestamp:   time.Now().UTC(),
			Environment: env,
			Checks:      make(map[string]Check),
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		start := time.Now()
		err := store.Ping(ctx)
		elapsed := time.Since(start)

		if err != nil {
			report.Status = "unhealthy"
			report.Checks["storage"] = Check{
				Status:       "unhealthy",
				ResponseTime: elapsed.String(),
				Error:        err.Error(),
			}
			logger.Error().Err(err).Dur("response_time", elapsed).Msg("storage health check failed")
			return response.WriteJSON(c.Response(), http.StatusServiceUnavailable, report)
		}

		report.Checks["storage"] = Check{Status: "healthy", ResponseTime: elapsed.String()}
		logger.Debug().Dur("response_time", elapsed).Msg("storage health check passed")
		return response.WriteJSON(c.Response(), http.StatusOK, report)
	}
}
