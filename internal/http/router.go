package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "lingo/backend/docs"
	"lingo/backend/internal/handler"
)

func NewRouter(
	translateHandler *handler.TranslateHandler,
	healthHandler *handler.HealthHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLoggerMiddleware())

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	translateHandler.RegisterRoutes(api)
	healthHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}
