package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/blog-platform/backend/internal/config"
	"github.com/emilythestrangee/blog-platform/backend/internal/database"
	"github.com/emilythestrangee/blog-platform/backend/internal/handlers"
	"github.com/emilythestrangee/blog-platform/backend/internal/middleware"
	"github.com/emilythestrangee/blog-platform/backend/internal/repository"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
	"github.com/emilythestrangee/blog-platform/backend/internal/templates"
)

type Server struct {
	cfg     *config.Config
	log     *logrus.Logger
	auth    service.AuthService
	handler *handlers.Handler
	limiter *middleware.IPRateLimiter
}

// NewServer wires repositories, services and handlers onto an HTTP server
func NewServer(cfg *config.Config, log *logrus.Logger, db database.Service) (*http.Server, error) {
	gormDB := db.GetDB()

	users := repository.NewUserRepository(gormDB)
	posts := repository.NewPostRepository(gormDB)
	tags := repository.NewTagRepository(gormDB)
	comments := repository.NewCommentRepository(gormDB)
	relations := repository.NewRelationRepository(gormDB)

	userService := service.NewUserService(users)
	authService := service.NewAuthService(users, userService, cfg)

	handler := handlers.NewHandler(handlers.Services{
		Auth:      authService,
		Users:     userService,
		Posts:     service.NewPostService(posts, users),
		Comments:  service.NewCommentService(comments, posts),
		Tags:      service.NewTagService(tags),
		Reactions: service.NewReactionService(relations, posts, users),
		DB:        db,
	}, cfg)

	newServer := &Server{
		cfg:     cfg,
		log:     log,
		auth:    authService,
		handler: handler,
		limiter: middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
	}

	router, err := newServer.RegisterRoutes()
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() (*gin.Engine, error) {
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.log))
	r.Use(cors.New(s.corsConfig()))

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	h := s.handler
	requireAuth := middleware.RequireAuth(s.auth)
	rateLimit := middleware.RateLimit(s.limiter)

	r.GET("/health", h.Health.Health)

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(s.auth))
	{
		// Auth routes
		api.POST("/auth/register", rateLimit, h.Auth.Register)
		api.POST("/auth/login", rateLimit, h.Auth.Login)
		api.GET("/auth/me", requireAuth, h.Auth.Me)

		// User routes
		api.GET("/users", h.User.List)
		api.POST("/users", rateLimit, h.User.Create)
		api.GET("/users/:id", h.User.Get)
		api.GET("/users/:id/posts", h.User.Posts)
		api.GET("/users/:id/followers", h.User.Followers)
		api.GET("/users/:id/following", h.User.Following)

		// Post routes (public reads)
		api.GET("/posts", h.Post.List)
		api.GET("/posts/:id", h.Post.Get)
		api.GET("/posts/:id/comments", h.Comment.List)
		api.GET("/comments/:id/replies", h.Comment.Replies)

		// Tag routes (public reads)
		api.GET("/tags", h.Tag.List)
		api.GET("/tags/:name", h.Tag.Get)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(requireAuth)
		{
			protected.PUT("/users/:id", h.User.Update)
			protected.DELETE("/users/:id", h.User.Delete)
			protected.POST("/users/:id/follow", h.User.Follow)
			protected.DELETE("/users/:id/follow", h.User.Unfollow)
			protected.GET("/me/bookmarks", h.User.Bookmarks)

			protected.POST("/posts", h.Post.Create)
			protected.PUT("/posts/:id", h.Post.Update)
			protected.DELETE("/posts/:id", h.Post.Delete)
			protected.POST("/posts/:id/like", h.Post.Like)
			protected.DELETE("/posts/:id/like", h.Post.Unlike)
			protected.POST("/posts/:id/bookmark", h.Post.Bookmark)
			protected.DELETE("/posts/:id/bookmark", h.Post.Unbookmark)

			protected.POST("/posts/:id/comments", h.Comment.Create)
			protected.PUT("/comments/:id", h.Comment.Update)
			protected.DELETE("/comments/:id", h.Comment.Delete)

			protected.POST("/tags", h.Tag.Create)
		}
	}

	// Server-rendered pages
	site := r.Group("/")
	site.Use(middleware.OptionalAuth(s.auth))
	{
		site.GET("/", h.Page.Index)
		site.GET("/login", h.Page.LoginForm)
		site.POST("/login", rateLimit, h.Page.Login)
		site.POST("/logout", h.Page.Logout)
		site.GET("/posts/:id", h.Page.ShowPost)

		write := site.Group("/")
		write.Use(middleware.RequireLogin())
		{
			write.GET("/posts/new", h.Page.NewPostForm)
			write.POST("/posts/new", h.Page.CreatePost)
			write.GET("/posts/:id/edit", h.Page.EditPostForm)
			write.POST("/posts/:id/edit", h.Page.UpdatePost)
			write.POST("/posts/:id/delete", h.Page.DeletePost)
			write.POST("/posts/:id/comments", h.Page.CreateComment)
		}
	}

	return r, nil
}

// corsConfig allows the configured origins. Credentials are only allowed for explicit origins.
func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(s.cfg.CORSOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range s.cfg.CORSOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.cfg.CORSOrigins
	cfg.AllowCredentials = true
	return cfg
}
