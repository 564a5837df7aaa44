// Package app assembles services, handlers and middleware into the HTTP server.
package app

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lifetrack/internal/classifier"
	"lifetrack/internal/config"
	"lifetrack/internal/handlers"
	"lifetrack/internal/metrics"
	"lifetrack/internal/middleware"
	"lifetrack/internal/services"

	_ "lifetrack/internal/docs" // swagger docs
)

// NewClassifier builds the category classifier from configuration. The
// Hugging Face backend is enabled only when an API key is set.
func NewClassifier(cfg *config.Config, log *zap.SugaredLogger) *classifier.Classifier {
	var remote classifier.Remote
	if cfg.HFAPIKey != "" {
		httpClient := &http.Client{Timeout: cfg.ClassifierTimeout}
		remote = classifier.NewHuggingFaceClient(httpClient, cfg.HFAPIKey, cfg.HFModel, cfg.HFBaseURL)
	}

	clf := classifier.New(classifier.TableByName(cfg.ClassifierKeywords), remote, cfg.ClassifierTimeout, log)
	log.Infow("category classifier ready",
		"table", clf.Table().Name(),
		"remote", clf.RemoteEnabled(),
		"model", cfg.HFModel,
	)
	return clf
}

// Services groups every business service the router depends on.
type Services struct {
	Users         services.UserServicer
	Transactions  services.TransactionServicer
	Goals         services.GoalServicer
	Activities    services.ActivityServicer
	Dashboard     services.DashboardServicer
	Notifications services.NotificationServicer
	Audit         services.AuditServicer
	Suggester     services.CategorySuggester
}

// NewServices creates the gorm-backed services.
func NewServices(db *gorm.DB, suggester services.CategorySuggester) *Services {
	return &Services{
		Users:         services.NewUserService(db),
		Transactions:  services.NewTransactionService(db, suggester),
		Goals:         services.NewGoalService(db),
		Activities:    services.NewActivityService(db),
		Dashboard:     services.NewDashboardService(db),
		Notifications: services.NewNotificationService(db),
		Audit:         services.NewAuditService(db),
		Suggester:     suggester,
	}
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// Limiter throttles login and categorization. Nil disables throttling.
	Limiter *middleware.IPRateLimiter
	// Gatherer backs /metrics. Nil selects the default registry.
	Gatherer prometheus.Gatherer
	// Swagger mounts the API docs under /swagger.
	Swagger bool
}

// NewRouter registers every route on a new gin engine.
func NewRouter(svc *Services, opts RouterOptions) *gin.Engine {
	if opts.Gatherer == nil {
		metrics.Register(prometheus.DefaultRegisterer)
		opts.Gatherer = prometheus.DefaultGatherer
	}
	throttle := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		throttle = middleware.RateLimit(opts.Limiter)
	}

	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit)
	settingsHandler := handlers.NewSettingsHandler(svc.Users, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit)
	goalHandler := handlers.NewGoalHandler(svc.Goals, svc.Audit)
	activityHandler := handlers.NewActivityHandler(svc.Activities, svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, svc.Notifications)
	aiHandler := handlers.NewAIHandler(svc.Suggester)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", throttle, authHandler.Login)
	v1.GET("/currencies", handlers.ListCurrencies)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/preferences", authHandler.UpdatePreferences)

	protected.GET("/settings", settingsHandler.GetSettings)
	protected.PUT("/settings", settingsHandler.UpdateSettings)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/summary", transactionHandler.GetMonthlySummary)
	transactions.GET("/export/csv", transactionHandler.ExportCSV)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetUserGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/progress", goalHandler.RecordProgress)

	activities := protected.Group("/activities")
	activities.POST("", activityHandler.CreateActivity)
	activities.GET("", activityHandler.GetUserActivities)
	activities.GET("/:id", activityHandler.GetActivityByID)
	activities.PUT("/:id", activityHandler.UpdateActivity)
	activities.DELETE("/:id", activityHandler.DeleteActivity)
	activities.POST("/:id/complete", activityHandler.CompleteActivity)

	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.GET("/notifications", dashboardHandler.GetNotifications)

	protected.POST("/ai/categorize", throttle, aiHandler.Categorize)
	protected.GET("/categories", aiHandler.ListCategories)

	return router
}

// CORS wraps h with the allowed origins. A "*" entry allows any origin.
func CORS(origins []string, h http.Handler) http.Handler {
	opts := []gorillaHandlers.CORSOption{
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Disposition", "X-Request-ID"}),
		gorillaHandlers.AllowedOrigins(origins),
	}
	if !allowsAny(origins) {
		opts = append(opts, gorillaHandlers.AllowCredentials())
	}
	return gorillaHandlers.CORS(opts...)(h)
}

func allowsAny(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}
