// Package router builds the echo instance: middleware chain, error handler
// and route table.
//
// Route table:
//
//	GET    /                          → banner
//	GET    /status                    → health report
//	GET    /metrics                   → Prometheus metrics
//	GET    /v1/students/list          → paginated list
//	GET    /v1/students/single/:id    → one record
//	POST   /v1/students/create        → insert
//	PATCH  /v1/students/update/:id    → partial update
//	DELETE /v1/students/delete/:id    → delete
package router

import (
	"github.com/aanand-mishra/student-records-api/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records-api/internal/http/handlers/system"
	"github.com/aanand-mishra/student-records-api/internal/http/middleware"
	"github.com/aanand-mishra/student-records-api/internal/server"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// defaultBodyLimit applies when the config leaves the limit unset.
const defaultBodyLimit = "100K"

func New(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	global := middleware.NewGlobalMiddlewares(s)
	e.HTTPErrorHandler = global.GlobalErrorHandler

	bodyLimit := s.Config.HTTPServer.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(
		middleware.RequestID(),
		middleware.NewContextEnhancer(s).EnhanceContext(),
		global.RequestLogger(),
		middleware.NewMetrics(s.Registry).Middleware(),
		global.Recover(),
		global.CORS(),
		echomw.BodyLimit(bodyLimit),
	)

	registerSystemRoutes(e, s)
	registerStudentRoutes(e, s)

	return e
}

func registerSystemRoutes(e *echo.Echo, s *server.Server) {
	e.GET("/", system.Root())
	e.GET("/status", system.CheckHealth(s.Storage, s.Config.Env))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))
}

func registerStudentRoutes(e *echo.Echo, s *server.Server) {
	v1 := e.Group("/v1/students")

	v1.GET("/list", student.GetList(s.Storage))
	v1.GET("/single/:id", student.GetByID(s.Storage))
	v1.POST("/create", student.New(s.Storage))
	v1.PATCH("/update/:id", student.Update(s.Storage))
	v1.DELETE("/delete/:id", student.Delete(s.Storage))
}
