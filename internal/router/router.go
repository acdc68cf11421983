package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"juegos/backend/internal/auth"
	"juegos/backend/internal/handler"
	"juegos/backend/internal/logger"
	"juegos/backend/internal/media"
	"juegos/backend/internal/metrics"
)

// maxUploadMemory caps the in-memory part of multipart parsing; larger
// uploads spill to temporary files.
const maxUploadMemory = 8 << 20

// Deps are the collaborators the routes are bound to.
type Deps struct {
	Log            *zap.Logger
	Metrics        *metrics.Metrics
	Games          *handler.GameHandler
	Auth           *handler.AuthHandler
	Events         *handler.EventsHandler
	JWTSecret      string
	AllowedOrigins []string
	UploadsDir     string
}

// New builds the gin engine with every route registered.
func New(d Deps) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxUploadMemory

	router.Use(gin.Recovery())
	router.Use(logger.Middleware(d.Log))
	router.Use(d.Metrics.Middleware())
	router.Use(cors.New(corsConfig(d.AllowedOrigins)))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Stored images, referenced by the image field of a game.
	router.Static(media.URLPrefix, d.UploadsDir)

	api := router.Group("/api")
	{
		api.POST("/auth/login", d.Auth.Login)

		gameRoutes := api.Group("/games")
		gameRoutes.Use(auth.AuthMiddleware(d.JWTSecret))
		{
			gameRoutes.GET("", d.Games.GetGames)
			gameRoutes.GET("/:id", d.Games.GetGames)
			gameRoutes.POST("", d.Games.CreateGame)
			gameRoutes.PUT("/:id", d.Games.UpdateGame)
			gameRoutes.DELETE("/:id", d.Games.DeleteGame)
		}

		api.GET("/events/games", auth.AuthMiddleware(d.JWTSecret), d.Events.StreamGameEvents)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
