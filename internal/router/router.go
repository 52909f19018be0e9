package router

import (
	"time"

	"saaspdv/internal/config"
	"saaspdv/internal/handler"
	"saaspdv/internal/infra"
	"saaspdv/internal/middleware"
	"saaspdv/internal/model"
	"saaspdv/internal/repository"
	"saaspdv/internal/service"
	"saaspdv/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler <- Service <- Repository <- DB/Redis.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// Infrastructure
	receipts := infra.NewReceiptPDF(cfg.ReceiptStoragePath)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	planRepo := repository.NewPlanRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg)
	tenantSvc := service.NewTenantService(tenantRepo, userRepo)
	userSvc := service.NewUserService(userRepo, tenantRepo)
	planSvc := service.NewPlanService(planRepo)
	productSvc := service.NewProductService(productRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	metricsSvc := service.NewMetricsService(saleRepo, productRepo, customerRepo, rdb)

	// Worker dispatcher, injected into the sale engine for async receipts
	dispatcher := worker.NewDispatcher(rdb)
	saleSvc := service.NewSaleService(saleRepo, productRepo, metricsSvc, dispatcher, receipts)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	tenantsH := handler.NewTenantsHandler(tenantSvc)
	usersH := handler.NewUsersHandler(userSvc)
	plansH := handler.NewPlansHandler(planSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	metricsH := handler.NewMetricsHandler(metricsSvc)

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Platform administration: plans, tenants, users, resellers
	admin := r.Group("/admin", jwtMW)
	{
		admin.POST("/plans", plansH.Create)
		admin.GET("/plans", plansH.List)

		admin.POST("/tenants", tenantsH.Create)
		admin.GET("/tenants", tenantsH.List)
		admin.PUT("/tenants/:id", tenantsH.Update)
		admin.DELETE("/tenants/:id", tenantsH.Delete)

		users := admin.Group("/users",
			middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}

		resellers := admin.Group("/resellers",
			middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin))
		{
			resellers.POST("", usersH.CreateReseller)
			resellers.GET("", usersH.ListResellers)
		}
	}

	// Store operations, scoped to the caller's tenant
	store := r.Group("", jwtMW)
	{
		store.POST("/products", productsH.Create)
		store.GET("/products", productsH.List)
		store.PUT("/products/:id", productsH.Update)

		store.POST("/customers", customersH.Create)
		store.GET("/customers", customersH.List)

		store.POST("/sales", salesH.Create)
		store.GET("/sales", salesH.List)
		store.GET("/sales/stats", salesH.Stats)
		store.GET("/sales/:id/receipt", salesH.Receipt)

		metrics := store.Group("/metrics")
		{
			metrics.GET("/overview", metricsH.Overview)
			metrics.GET("/sales-trend", metricsH.SalesTrend)
			metrics.GET("/top-products", metricsH.TopProducts)
			metrics.GET("/inventory-alerts", metricsH.InventoryAlerts)
		}
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
