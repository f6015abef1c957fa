package router

import (
	"net/http"
	"time"

	"neuromotion/internal/config"
	"neuromotion/internal/handlers"
	"neuromotion/internal/models"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, store handlers.SessionStore, questionnaire *models.Questionnaire) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.MaxMultipartMemory = 8 << 20

	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.Conf.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", headerRequestID},
		AllowCredentials: true,
	}))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	analyzeHandler := handlers.NewAnalyzeHandler(log, store, questionnaire)
	sessionsHandler := handlers.NewSessionsHandler(log, store)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: uint(config.Conf.Server.RateLimitPerMinute),
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "NeuroMotion API v1.0", "status": "operational"})
	})

	api := router.Group("/api/v1")
	api.Use(limiter)
	{
		api.POST("/analyze/survey", analyzeHandler.AnalyzeSurvey)
		api.POST("/analyze/taps", analyzeHandler.AnalyzeTaps)
		api.POST("/analyze/spiral", analyzeHandler.AnalyzeSpiral)
		api.POST("/aggregate", analyzeHandler.Aggregate)
		api.GET("/sessions", sessionsHandler.ListSessions)
		api.GET("/statistics", sessionsHandler.GetStatistics)
	}

	return router
}
