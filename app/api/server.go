package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(requestID())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\" %s\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
				param.Request.Header.Get(requestIDHeader),
			)
		},
		SkipPaths: []string{"/health"},
	}))
	r.Use(gin.Recovery())
	r.Use(cors(corsOrigins))

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.GetHealth)

	authenticated := authRequired(h.tokens)
	admin := adminRequired()

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/profile", authenticated, h.GetProfile)

		projects := api.Group("/projects")
		projects.GET("", h.ListProjects)
		projects.GET("/:slug", h.GetProject)
		projects.POST("", authenticated, admin, h.CreateProject)
		projects.PUT("/:slug", authenticated, admin, h.UpdateProject)
		projects.DELETE("/:slug", authenticated, admin, h.DeleteProject)

		articles := api.Group("/articles")
		articles.GET("", h.ListArticles)
		articles.GET("/:slug", h.GetArticle)
		articles.POST("", authenticated, admin, h.CreateArticle)
		articles.PUT("/:slug", authenticated, admin, h.UpdateArticle)
		articles.DELETE("/:slug", authenticated, admin, h.DeleteArticle)

		favorites := api.Group("/favorites", authenticated)
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.DELETE("/:project_id", h.RemoveFavorite)
	}

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
