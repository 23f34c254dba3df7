package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/auth"
	"github.com/framelight/studio-api/internal/config"
	"github.com/framelight/studio-api/internal/database"
	"github.com/framelight/studio-api/internal/http/handler"
	"github.com/framelight/studio-api/internal/http/middleware"

	_ "github.com/framelight/studio-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	authHandler      *handler.AuthHandler
	customerHandler  *handler.CustomerHandler
	proposalHandler  *handler.ProposalHandler
	shootHandler     *handler.ShootHandler
	taskHandler      *handler.TaskHandler
	financeHandler   *handler.FinanceHandler
	catalogHandler   *handler.CatalogHandler
	dashboardHandler *handler.DashboardHandler
	aiHandler        *handler.AIHandler
	portalHandler    *handler.PortalHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	customerHandler *handler.CustomerHandler,
	proposalHandler *handler.ProposalHandler,
	shootHandler *handler.ShootHandler,
	taskHandler *handler.TaskHandler,
	financeHandler *handler.FinanceHandler,
	catalogHandler *handler.CatalogHandler,
	dashboardHandler *handler.DashboardHandler,
	aiHandler *handler.AIHandler,
	portalHandler *handler.PortalHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		authHandler:      authHandler,
		customerHandler:  customerHandler,
		proposalHandler:  proposalHandler,
		shootHandler:     shootHandler,
		taskHandler:      taskHandler,
		financeHandler:   financeHandler,
		catalogHandler:   catalogHandler,
		dashboardHandler: dashboardHandler,
		aiHandler:        aiHandler,
		portalHandler:    portalHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with connection stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
			},
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)

			// Customers
			r.Route("/customers", func(r chi.Router) {
				r.Get("/", rt.customerHandler.List)
				r.Post("/", rt.customerHandler.Create)
				r.Get("/{id}", rt.customerHandler.GetByID)
				r.Put("/{id}", rt.customerHandler.Update)
				r.Delete("/{id}", rt.customerHandler.Delete)
				r.Get("/{id}/timeline", rt.customerHandler.Timeline)
				r.Post("/{id}/portal-access", rt.customerHandler.RotatePortalAccess)
				r.Delete("/{id}/portal-access", rt.customerHandler.RevokePortalAccess)
				r.Get("/{id}/interactions", rt.customerHandler.ListInteractions)
				r.Post("/{id}/interactions", rt.customerHandler.CreateInteraction)
			})
			r.Delete("/interactions/{interactionId}", rt.customerHandler.DeleteInteraction)

			// Proposals
			r.Route("/proposals", func(r chi.Router) {
				r.Get("/", rt.proposalHandler.List)
				r.Post("/", rt.proposalHandler.Create)
				r.Get("/{id}", rt.proposalHandler.GetByID)
				r.Put("/{id}", rt.proposalHandler.Update)
				r.Delete("/{id}", rt.proposalHandler.Delete)

				// Lifecycle endpoints
				r.Post("/{id}/send", rt.proposalHandler.Send)
				r.Post("/{id}/accept", rt.proposalHandler.Accept)
				r.Post("/{id}/decline", rt.proposalHandler.Decline)
				r.Post("/{id}/mark-paid", rt.proposalHandler.MarkPaid)
			})

			// Shoots
			r.Route("/shoots", func(r chi.Router) {
				r.Get("/", rt.shootHandler.List)
				r.Post("/", rt.shootHandler.Create)
				r.Get("/{id}", rt.shootHandler.GetByID)
				r.Put("/{id}", rt.shootHandler.Update)
				r.Delete("/{id}", rt.shootHandler.Delete)
				r.Post("/{id}/scenes", rt.shootHandler.AddScene)
				r.Get("/{id}/deliverables", rt.shootHandler.ListDeliverables)
				r.Post("/{id}/deliverables", rt.shootHandler.AddDeliverable)
				r.Post("/{id}/deliverables/upload", rt.shootHandler.UploadDeliverable)
			})
			r.Patch("/scenes/{sceneId}", rt.shootHandler.UpdateScene)
			r.Post("/scenes/{sceneId}/toggle", rt.shootHandler.ToggleScene)
			r.Delete("/scenes/{sceneId}", rt.shootHandler.DeleteScene)
			r.Get("/deliverables/{deliverableId}/download", rt.shootHandler.DownloadDeliverable)
			r.Delete("/deliverables/{deliverableId}", rt.shootHandler.DeleteDeliverable)

			// Tasks
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", rt.taskHandler.List)
				r.Post("/", rt.taskHandler.Create)
				r.Post("/reorder", rt.taskHandler.Reorder)
				r.Patch("/{id}", rt.taskHandler.Update)
				r.Delete("/{id}", rt.taskHandler.Delete)
			})

			// Finance
			r.Route("/finance", func(r chi.Router) {
				r.Get("/expenses", rt.financeHandler.ListExpenses)
				r.Post("/expenses", rt.financeHandler.CreateExpense)
				r.Put("/expenses/{id}", rt.financeHandler.UpdateExpense)
				r.Delete("/expenses/{id}", rt.financeHandler.DeleteExpense)
				r.Get("/incomes", rt.financeHandler.ListIncomes)
				r.Post("/incomes", rt.financeHandler.CreateIncome)
				r.Put("/incomes/{id}", rt.financeHandler.UpdateIncome)
				r.Delete("/incomes/{id}", rt.financeHandler.DeleteIncome)
				r.Get("/summary", rt.financeHandler.Summary)
			})

			// Catalog
			r.Route("/catalog", func(r chi.Router) {
				r.Get("/services", rt.catalogHandler.ListServiceItems)
				r.Post("/services", rt.catalogHandler.CreateServiceItem)
				r.Put("/services/{id}", rt.catalogHandler.UpdateServiceItem)
				r.Delete("/services/{id}", rt.catalogHandler.DeleteServiceItem)
				r.Get("/bundles", rt.catalogHandler.ListBundles)
				r.Post("/bundles", rt.catalogHandler.CreateBundle)
				r.Get("/bundles/{id}", rt.catalogHandler.GetBundle)
				r.Put("/bundles/{id}", rt.catalogHandler.UpdateBundle)
				r.Delete("/bundles/{id}", rt.catalogHandler.DeleteBundle)
			})

			// Dashboard
			r.Get("/dashboard/metrics", rt.dashboardHandler.Metrics)
			r.Get("/dashboard/summary", rt.dashboardHandler.Summary)

			// AI generation
			r.Route("/ai", func(r chi.Router) {
				r.Post("/proposal-items", rt.aiHandler.GenerateProposalItems)
				r.Post("/shot-list", rt.aiHandler.GenerateShotList)
				r.Post("/equipment-list", rt.aiHandler.GenerateEquipmentList)
			})
		})
	})

	// Client portal routes, token-gated and tightly rate limited
	r.Route("/portal/{token}", func(r chi.Router) {
		r.Use(rt.rateLimiter.LimitPortal)

		r.Get("/", rt.portalHandler.GetCustomer)
		r.Get("/shoots", rt.portalHandler.ListShoots)
		r.Get("/deliverables", rt.portalHandler.ListDeliverables)
		r.Post("/verify-pin", rt.portalHandler.VerifyPin)
		r.Get("/finance", rt.portalHandler.FinanceSummary)
	})

	return r
}
