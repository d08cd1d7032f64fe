package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gymdesk/gymdesk-backend/internal/config"
	"github.com/gymdesk/gymdesk-backend/internal/handler"
	"github.com/gymdesk/gymdesk-backend/internal/middleware"
	"github.com/gymdesk/gymdesk-backend/internal/response"
	"github.com/gymdesk/gymdesk-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Class      *handler.ClassHandler
	Enrollment *handler.EnrollmentHandler
	Member     *handler.MemberHandler
	Board      *handler.BoardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for login attempts (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/admin/login", authLimiter.Middleware(), handlers.Auth.AdminLogin)

		authed := auth.Group("", middleware.RequireAdminJWT(authService), middleware.CheckAdminSession(authService))
		{
			authed.POST("/admin/logout", handlers.Auth.AdminLogout)
			authed.GET("/admin/me", handlers.Auth.GetAdminProfile)
		}
	}

	// ─── 2. Admin Group (JWT + Session) ────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAdminJWT(authService),
		middleware.CheckAdminSession(authService),
	)
	{
		adminAPI.GET("/board", handlers.Class.GetBoard)

		adminAPI.GET("/classes", handlers.Class.ListClasses)
		adminAPI.POST("/classes", handlers.Class.CreateClass)
		adminAPI.PUT("/classes/:id", handlers.Class.UpdateClass)
		adminAPI.DELETE("/classes/:id", middleware.RequireOwner(), handlers.Class.DeleteClass)
		adminAPI.GET("/classes/:id/roster", handlers.Class.GetClassRoster)
		adminAPI.POST("/classes/:id/enrollment", handlers.Enrollment.ToggleEnrollment)

		adminAPI.GET("/members", handlers.Member.ListMembers)
		adminAPI.GET("/members/:id", handlers.Member.GetMember)
		adminAPI.POST("/members", handlers.Member.CreateMember)
		adminAPI.PUT("/members/:id", handlers.Member.UpdateMember)
		adminAPI.DELETE("/members/:id", middleware.RequireOwner(), handlers.Member.DeleteMember)
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	wsGroup := router.Group("/ws/v1")
	wsGroup.Use(middleware.RequireAdminWSAuth(authService))
	{
		wsGroup.GET("/admin/board/stream", handlers.Board.BoardStream)
	}

	return router
}
