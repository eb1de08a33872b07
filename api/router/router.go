package router

import (
	"github.com/gin-gonic/gin"

	"simply-blog/api/handlers"
	"simply-blog/api/middleware"
	"simply-blog/config"
	"simply-blog/services"
)

// New wires the HTTP surface around the post service. The service (and
// with it the backend chosen at startup) is fixed for the router's
// lifetime; every route operates against the same store.
func New(svc *services.PostService) *gin.Engine {
	cfg := config.GetConfig()

	r := gin.Default()
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/health", handlers.HealthHandler(svc))

	api := r.Group("/api")
	{
		api.GET("/posts", handlers.ListPostsHandler(svc))
		api.GET("/posts/:id", handlers.GetPostHandler(svc))
		api.GET("/posts/slug/:slug", handlers.GetPostBySlugHandler(svc))
		api.POST("/posts", handlers.CreatePostHandler(svc))
		api.PUT("/posts/:id", handlers.UpdatePostHandler(svc))
		api.DELETE("/posts/:id", handlers.DeletePostHandler(svc))
		api.PATCH("/posts/:id/like", handlers.LikePostHandler(svc))
	}

	return r
}
