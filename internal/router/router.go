// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package router provides HTTP routing configuration for the Crema Panel server.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tinkerhaus/crema/internal/handler"
	"github.com/tinkerhaus/crema/internal/middleware"
	"github.com/tinkerhaus/crema/internal/panelconfig"
	"github.com/tinkerhaus/crema/internal/types"
)

// Router manages HTTP request routing and handler registration.
type Router struct {
	settingsHandler *handler.SettingsHandler
	networkHandler  *handler.NetworkHandler
	commandHandler  *handler.CommandHandler
	shareHandler    *handler.ShareHandler

	panelCfg panelconfig.Configuration
}

// New creates a new Router instance with the provided handlers.
func New(
	settingsHandler *handler.SettingsHandler,
	networkHandler *handler.NetworkHandler,
	commandHandler *handler.CommandHandler,
	shareHandler *handler.ShareHandler,
) *Router {
	return &Router{
		settingsHandler: settingsHandler,
		networkHandler:  networkHandler,
		commandHandler:  commandHandler,
		shareHandler:    shareHandler,
	}
}

// Setup initializes the Gin engine with middleware and routes.
func (r *Router) Setup(cfg *types.Config) *gin.Engine {
	r.panelCfg = panelconfig.Configuration{ServerURL: cfg.Panel.ServerURL}

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Disable trusted proxy feature for security
	engine.SetTrustedProxies(nil)

	r.registerRoutes(engine)

	return engine
}

// registerRoutes registers the config resource and all API routes.
func (r *Router) registerRoutes(engine *gin.Engine) {
	// Well-known config resource read by the panel frontend at startup.
	engine.GET(panelconfig.ResourcePath, r.configResource)

	api := engine.Group("/api")
	{
		api.GET("/health", r.healthCheck)

		// Endpoint resolution support
		api.GET("/network-ip", r.networkHandler.GetNetworkIP)
		api.GET("/share-url", r.shareHandler.GetShareURL)

		// Settings and tag taxonomy
		api.GET("/settings", r.settingsHandler.GetSettings)
		api.PUT("/settings", r.settingsHandler.UpdateSettings)
		api.GET("/tags", r.settingsHandler.GetTags)

		// Machine command passthrough
		api.POST("/machine/command/*path", r.commandHandler.Send)
	}
}

// configResource serves the panel configuration resource.
func (r *Router) configResource(c *gin.Context) {
	c.JSON(http.StatusOK, r.panelCfg)
}

// healthCheck returns a simple health status.
func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "crema-panel",
	})
}
