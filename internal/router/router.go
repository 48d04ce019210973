package router

import (
	"fmt"
	"net/http"
	"time"

	"newsboard/internal/config"
	"newsboard/internal/database"
	"newsboard/internal/handlers"
	"newsboard/internal/metrics"
	"newsboard/internal/middleware"
	"newsboard/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Setup configures and returns the Gin router
func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	handlers.RegisterValidators()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(gin.LoggerWithFormatter(logFormat))
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())
	router.Use(corsMiddleware(cfg))

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	router.Use(sessions.Sessions(cfg.SessionName, sessionStore))

	// Stores
	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	comments := store.NewCommentStore(db)
	ledger := store.NewUpvoteLedger(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users)
	postHandler := handlers.NewPostHandler(posts, comments, ledger)
	commentHandler := handlers.NewCommentHandler(comments, ledger)

	router.GET("/healthz", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	api.Use(middleware.LoadUser(users))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/logout", authHandler.Logout)
			auth.GET("/user", middleware.AuthRequired(), authHandler.User)
		}

		postRoutes := api.Group("/posts")
		{
			postRoutes.GET("", postHandler.GetPosts)
			postRoutes.POST("", middleware.AuthRequired(), postHandler.CreatePost)
			postRoutes.GET("/:id", postHandler.GetPost)
			postRoutes.POST("/:id/upvote", middleware.AuthRequired(), postHandler.Upvote)
			postRoutes.POST("/:id/comment", middleware.AuthRequired(), postHandler.CreateComment)
			postRoutes.GET("/:id/comments", postHandler.GetComments)
		}

		commentRoutes := api.Group("/comments")
		{
			commentRoutes.POST("/:id", middleware.AuthRequired(), commentHandler.Reply)
			commentRoutes.POST("/:id/upvote", middleware.AuthRequired(), commentHandler.Upvote)
			commentRoutes.GET("/:id/comments", commentHandler.GetReplies)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Success: false, Error: "Not Found"})
	})

	return router
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if len(cfg.CORSOrigins) == 0 {
		return cors.Default()
	}
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	corsConfig.AddExposeHeaders(middleware.RequestIDHeader)
	return cors.New(corsConfig)
}

func logFormat(param gin.LogFormatterParams) string {
	requestID, _ := param.Keys[middleware.RequestIDKey].(string)
	return fmt.Sprintf("[GIN] %s | %s | %3d | %13v | %15s | %-7s %#v %s\n",
		param.TimeStamp.Format("2006/01/02 - 15:04:05"),
		requestID,
		param.StatusCode,
		param.Latency,
		param.ClientIP,
		param.Method,
		param.Path,
		param.ErrorMessage,
	)
}
