package main

import (
	"net/http"

	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/handlers"
	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/middleware"
	"github.com/Exponential-Science/better-auth-hedera/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "better-auth-hedera"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	siwhHandler    *handlers.SiwhHandler
	authHandler    *handlers.AuthHandler
	authMiddleware gin.HandlerFunc
	allowedOrigins []string
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, d.allowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAuthRoutes(r, d)
	return r
}

// applyCORSMiddleware allows credentialed requests from allowed origins.
// An empty list reflects any origin.
func applyCORSMiddleware(r *gin.Engine, allowed []string) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		allowedSet[origin] = struct{}{}
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowedSet[origin]; ok || len(allowedSet) == 0 {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Vary", "Origin")
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAuthRoutes(r *gin.Engine, d routeDeps) {
	auth := r.Group("/api/auth")
	auth.Use(d.authMiddleware)
	{
		siwh := auth.Group("/siwh")
		{
			siwh.POST("/nonce", d.siwhHandler.Nonce)
			siwh.POST("/verify", d.siwhHandler.Verify)
			siwh.POST("/link", middleware.RequireAuth(), d.siwhHandler.Link)
			siwh.POST("/unlink", middleware.RequireAuth(), d.siwhHandler.Unlink)
			siwh.GET("/wallets", middleware.RequireAuth(), d.siwhHandler.Wallets)
		}

		auth.GET("/verify-email", d.authHandler.VerifyEmail)
		auth.GET("/session", middleware.RequireAuth(), d.authHandler.GetSession)
		auth.POST("/sign-out", d.authHandler.SignOut)
	}
}
