package httpapi

import (
	"net/http"

	"moderation-controlplane/internal/config"
	"moderation-controlplane/services/admin"
	"moderation-controlplane/services/apikey"
	"moderation-controlplane/services/category"
	"moderation-controlplane/services/moderation"
	"moderation-controlplane/services/service"
	"moderation-controlplane/services/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("httpapi",
	fx.Provide(
		NewHandler,
		NewRouter,
	),
)

// Handler bundles the domain services behind the HTTP surface.
type Handler struct {
	keys       *apikey.Service
	admins     *admin.Service
	services   *service.Service
	moderation *moderation.Service
	categories *category.Service
	stats      *stats.Service
	logger     *zap.Logger
}

// HandlerParams defines dependencies for Handler construction.
type HandlerParams struct {
	fx.In

	Keys       *apikey.Service
	Admins     *admin.Service
	Services   *service.Service
	Moderation *moderation.Service
	Categories *category.Service
	Stats      *stats.Service
	Logger     *zap.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(p HandlerParams) *Handler {
	return &Handler{
		keys:       p.Keys,
		admins:     p.Admins,
		services:   p.Services,
		moderation: p.Moderation,
		categories: p.Categories,
		stats:      p.Stats,
		logger:     p.Logger,
	}
}

// NewRouter builds the gin engine with all routes registered. Role gates are
// declared per route; the services never re-check roles internally.
func NewRouter(cfg *config.Config, h *Handler) http.Handler {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), Error())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.POST("/auth/login", h.Login)
	v1.POST("/moderation/text", APIKeyAuth(h.keys), h.SubmitText)

	anyAdmin := v1.Group("", AdminAuth(h.admins))
	anyAdmin.GET("/moderation/requests", h.ListRequests)
	anyAdmin.GET("/moderation/requests/:id", h.GetRequest)
	anyAdmin.GET("/categories", h.ListCategories)
	anyAdmin.GET("/rules", h.ListRules)
	anyAdmin.GET("/statistics/:service_id", h.GetStatistics)
	anyAdmin.GET("/services", h.ListServices)

	moderators := v1.Group("", AdminAuth(h.admins, admin.RoleSuperAdmin, admin.RoleContentModerator))
	moderators.PATCH("/moderation/requests/:id", h.OverrideResult)

	superAdmin := v1.Group("", AdminAuth(h.admins, admin.RoleSuperAdmin))
	superAdmin.POST("/categories", h.UpsertCategory)
	superAdmin.POST("/rules", h.CreateRule)
	superAdmin.POST("/services", h.CreateService)
	superAdmin.PATCH("/services/:id", h.UpdateService)
	superAdmin.GET("/services/:id/api-keys", h.ListAPIKeys)
	superAdmin.POST("/services/:id/api-keys", h.IssueAPIKey)
	superAdmin.PATCH("/api-keys/:id", h.UpdateAPIKey)
	superAdmin.GET("/users", h.ListUsers)
	superAdmin.POST("/users", h.CreateUser)

	return r
}
