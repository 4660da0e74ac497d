package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

// SetupRouter registers middlewares and all resource routes. Routes
// use trailing slashes; gin's redirect handles the bare form.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.Generic(ctx, http.StatusNotFound)
	})

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		api.POST("/login/", c.AuthorHandler.Login)

		// Authentication is optional on resource routes: anonymous
		// requests pass through and the per-action policy decides.
		authenticated := api.Group("", middleware.Authentication(c.JWTManager, c.AuthorRepo))

		authors := authenticated.Group("/authors")
		{
			authors.GET("/", c.AuthorHandler.List)
			authors.POST("/", c.AuthorHandler.Register)
			authors.GET("/:id/", c.AuthorHandler.Retrieve)
			authors.PUT("/:id/", c.AuthorHandler.Update)
			authors.PATCH("/:id/", c.AuthorHandler.PartialUpdate)
			authors.DELETE("/:id/", c.AuthorHandler.Delete)
		}

		posts := authenticated.Group("/posts")
		{
			posts.GET("/", c.PostHandler.List)
			posts.POST("/", c.PostHandler.Create)
			posts.GET("/:id/", c.PostHandler.Retrieve)
			posts.PUT("/:id/", c.PostHandler.Update)
			posts.PATCH("/:id/", c.PostHandler.PartialUpdate)
			posts.DELETE("/:id/", c.PostHandler.Delete)
		}
	}

	return router
}

// healthCheckHandler reports database and cache reachability.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		overall := "ok"

		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			overall = "degraded"
			dbStatus = "unreachable"
		}

		// The cache is optional; an unreachable Redis does not fail
		// the check.
		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "unreachable"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
