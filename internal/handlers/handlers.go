package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"youthhub/api/internal/config"
	"youthhub/api/internal/middleware"
	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
	"youthhub/api/internal/repository"
	"youthhub/api/internal/service"
	"youthhub/api/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	db       *pgxpool.Pool
	cache    *redis.Client
	auth     AuthProvider
	news     *service.NewsService
	faqs     *service.FAQService
	contacts *service.ContactService
	media    *service.MediaService
	users    *repository.UserRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) *HandlerSet {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	contactRepo := repository.NewContactRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	return &HandlerSet{
		log:      log,
		cfg:      cfg,
		db:       db,
		cache:    cache,
		auth:     service.NewAuthService(userRepo, tokenRepo, cfg, log),
		news:     service.NewNewsService(newsRepo, log),
		faqs:     service.NewFAQService(faqRepo, log),
		contacts: service.NewContactService(contactRepo, log),
		media:    service.NewMediaService(mediaRepo, store, log),
		users:    userRepo,
	}
}

// Mount wires every route under the given group.
func (h *HandlerSet) Mount(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	rl := h.cfg.RateLimit
	apiLimiter := middleware.RateLimit(h.cache, rl, "api", rl.MaxAPI, "ratelimit.exceeded", h.log)
	authLimiter := middleware.RateLimit(h.cache, rl, "auth", rl.MaxAuth, "ratelimit.auth_exceeded", h.log)
	authn := middleware.Auth(h.cfg, h.users)

	v1 := router.Group("/v1")
	v1.Use(apiLimiter)
	{
		auth := v1.Group("/auth")
		auth.POST("/register", authLimiter, h.Register)
		auth.POST("/login", authLimiter, h.Login)
		auth.POST("/refresh", authLimiter, h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot-password", authLimiter, h.ForgotPassword)
		auth.POST("/reset-password", authLimiter, h.ResetPassword)

		protected := v1.Group("/auth")
		protected.Use(authn)
		protected.GET("/me", h.Me)
		protected.POST("/logout-all", h.LogoutAll)
		protected.POST("/change-password", h.ChangePassword)

		news := v1.Group("/news")
		news.GET("", h.ListPublishedNews)
		news.GET("/slug/:slug", h.GetNewsBySlug)

		faqs := v1.Group("/faqs")
		faqs.GET("", h.ListPublishedFAQs)

		v1.POST("/contact", h.SubmitContact)

		media := v1.Group("/media")
		media.Use(authn)
		media.POST("", h.UploadMedia)
		media.GET("", h.ListMedia)
		media.DELETE("/:id", middleware.RequirePermission("media", "delete"), h.DeleteMedia)

		admin := v1.Group("/admin")
		admin.Use(authn)
		{
			n := admin.Group("/news")
			n.GET("", middleware.RequirePermission("news", "update"), h.ListNews)
			n.GET("/:id", middleware.RequirePermission("news", "update"), h.GetNews)
			n.POST("", middleware.RequirePermission("news", "create"), h.CreateNews)
			n.PUT("/:id", middleware.RequirePermission("news", "update"), h.UpdateNews)
			n.DELETE("/:id", middleware.RequirePermission("news", "delete"), h.DeleteNews)
			n.PATCH("/:id/publish", middleware.RequirePermission("news", "publish"), h.ToggleNewsPublish)

			f := admin.Group("/faqs")
			f.GET("", middleware.RequirePermission("faqs", "update"), h.ListFAQs)
			f.GET("/:id", middleware.RequirePermission("faqs", "update"), h.GetFAQ)
			f.POST("", middleware.RequirePermission("faqs", "create"), h.CreateFAQ)
			f.PUT("/:id", middleware.RequirePermission("faqs", "update"), h.UpdateFAQ)
			f.DELETE("/:id", middleware.RequirePermission("faqs", "delete"), h.DeleteFAQ)

			ct := admin.Group("/contacts")
			ct.GET("", middleware.RequirePermission("contacts", "read"), h.ListContacts)
			ct.GET("/:id", middleware.RequirePermission("contacts", "read"), h.GetContact)
			ct.PATCH("/:id/status", middleware.RequirePermission("contacts", "update"), h.UpdateContactStatus)
			ct.DELETE("/:id", middleware.RequirePermission("contacts", "delete"), h.DeleteContact)

			u := admin.Group("/users")
			u.GET("", middleware.RequirePermission("users", "read"), h.ListUsers)
			u.GET("/:id", middleware.RequirePermission("users", "read"), h.GetUser)
		}
	}
}

func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func listParams(c *gin.Context) pagination.Params {
	params := pagination.Params{
		Sort:   c.Query("sort"),
		Search: c.Query("search"),
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		params.Limit = v
	}
	return params
}

func boolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func strQuery(c *gin.Context, name string) *string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	return &raw
}

type listEnvelope struct {
	Items any             `json:"items"`
	Meta  pagination.Meta `json:"pagination"`
}

type userResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
	CreatedAt string      `json:"createdAt"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
