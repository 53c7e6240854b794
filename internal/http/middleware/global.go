package middleware

import (
	"net/http"

	"github.com/aanand-mishra/student-records-api/internal/errs"
	"github.com/aanand-mishra/student-records-api/internal/server"
	"github.com/aanand-mishra/student-records-api/internal/utils/response"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.HTTPServer.CORSAllowedOrigins,
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// toHTTPError maps any error a handler or echo returns onto the
// application's HTTPError. Unknown routes and wrong methods both read as
// "Route not found."; anything unrecognised is a 500.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return errs.NewInternalServerError(err)
	}

	switch echoErr.Code {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return errs.NewNotFoundError(errs.MessageRouteNotFound)
	case http.StatusRequestEntityTooLarge:
		return errs.NewPayloadTooLargeError(err)
	}

	message, ok := echoErr.Message.(string)
	if !ok {
		message = http.StatusText(echoErr.Code)
	}
	return &errs.HTTPError{Status: echoErr.Code, Message: message, Err: err}
}

// statusFromError resolves the status code a request will be answered
// with. Middleware sees the handler error before GlobalErrorHandler has
// written anything, so the response status alone is not reliable.
func statusFromError(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	return toHTTPError(err).Status
}

// RequestLogger writes one access log line per request. The level follows
// the status: 5xx at error, 4xx at warn, the rest at info.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogMethod:  true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusFromError(c, v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error()
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			// The only log line for a failed request; GlobalErrorHandler
			// does not log again.
			e.
				Err(v.Error).
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("uri", v.URI).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// GlobalErrorHandler renders every error returned by a handler as the
// status:false envelope. Logging is left to RequestLogger.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = response.WriteJSON(c.Response(), httpErr.Status, response.Failure(httpErr.Message))
}
