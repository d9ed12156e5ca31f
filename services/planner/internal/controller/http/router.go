package http

import (
	"net/http"
	"time"

	"some-planner/pkg/logger"
	"some-planner/pkg/middleware"
	"some-planner/pkg/response"
	"some-planner/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterConfig struct {
	AllowedOrigins []string
	UploadMaxSize  int64
	LoginLimit     int
	LoginWindow    time.Duration
}

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Guard     *Guard
	Auth      *AuthHandler
	Shops     *ShopHandler
	Templates *TemplateHandler
	Posts     *PostHandler
	Media     *MediaHandler
	// Uploads is set when media is kept on local disk.
	Uploads *storage.Local
}

func NewRouter(cfg RouterConfig, h Handlers, redisClient *redis.Client, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger(), middleware.Recovery(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", csrfHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		response.Status(c, http.StatusNotFound, "Not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Status(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	guard := h.Guard
	api := r.Group("/api")

	// Public routes
	{
		login := []gin.HandlerFunc{h.Auth.Login}
		if redisClient != nil && cfg.LoginLimit > 0 {
			login = append([]gin.HandlerFunc{middleware.RateLimitMiddleware(redisClient, cfg.LoginLimit, cfg.LoginWindow)}, login...)
		}
		api.POST("/auth/login", login...)
		api.GET("/auth/status", h.Auth.Status)
	}

	// Uploads are parsed under a body limit before the guards read the form
	api.POST("/media", LimitUploadBody(cfg.UploadMaxSize), guard.RequireAuth(), guard.RequireCSRF(), h.Media.UploadMedia)

	protected := api.Group("")
	protected.Use(guard.RequireAuth(), guard.RequireCSRF())
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/auth/token", h.Auth.Token)

		protected.GET("/shops", h.Shops.ListShops)
		protected.GET("/shops/:id", h.Shops.GetShop)
		protected.POST("/shops", h.Shops.CreateShop)
		protected.PUT("/shops", h.Shops.UpdateShop)
		protected.PUT("/shops/:id", h.Shops.UpdateShop)
		protected.DELETE("/shops", h.Shops.DeleteShop)
		protected.DELETE("/shops/:id", h.Shops.DeleteShop)

		protected.GET("/templates", h.Templates.ListTemplates)
		protected.GET("/templates/:id", h.Templates.GetTemplate)
		protected.POST("/templates", h.Templates.CreateTemplate)
		protected.PUT("/templates", h.Templates.UpdateTemplate)
		protected.PUT("/templates/:id", h.Templates.UpdateTemplate)
		protected.DELETE("/templates", h.Templates.DeleteTemplate)
		protected.DELETE("/templates/:id", h.Templates.DeleteTemplate)

		protected.GET("/posts", h.Posts.ListPosts)
		protected.GET("/posts/:id", h.Posts.GetPost)
		protected.POST("/posts", h.Posts.CreatePost)
		protected.PUT("/posts", h.Posts.UpdatePost)
		protected.PUT("/posts/:id", h.Posts.UpdatePost)
		protected.DELETE("/posts", h.Posts.DeletePost)
		protected.DELETE("/posts/:id", h.Posts.DeletePost)

		protected.DELETE("/media", h.Media.DeleteMedia)
		protected.DELETE("/media/:id", h.Media.DeleteMedia)
	}

	if h.Uploads != nil {
		r.GET("/uploads/*filepath", guard.RequireAuth(), ServeUpload(h.Uploads, log))
	}

	return r
}
