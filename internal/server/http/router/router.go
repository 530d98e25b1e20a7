package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/checkout/internal/server/http/handlers"
	"github.com/polkiloo/checkout/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CheckoutFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)

	api := engine.Group("/api")
	api.Use(middleware.AuthRequired(facade))
	api.POST("/order/create", orderHandler.Create)
	api.GET("/order/list", orderHandler.List)
	api.GET("/cart", cartHandler.Snapshot)
	api.POST("/cart", cartHandler.Update)

	return engine
}
