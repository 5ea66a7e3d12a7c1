package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vyaparpro-api/internal/handler"
	"vyaparpro-api/internal/middleware"
	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/policy"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/internal/service"
	"vyaparpro-api/internal/ws"
	"vyaparpro-api/pkg/config"
	"vyaparpro-api/pkg/database"
	applogger "vyaparpro-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}

	log := applogger.New(cfg.App.Env)

	// 2. Setup Database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.Supplier{},
		&model.Product{}, &model.Sale{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migration failed")
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	authService := service.NewAuthService(userRepo, cfg.JWT)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(categoryRepo, supplierRepo)
	productService := service.NewProductService(productRepo, categoryRepo, supplierRepo)
	salesService := service.NewSalesService(productRepo, saleRepo, db, wsHub, log)
	analyticsService := service.NewAnalyticsService(productRepo, categoryRepo, supplierRepo, saleRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	supplierHandler := handler.NewSupplierHandler(catalogService)
	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(salesService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// 5. Seed default admin user
	seedAdmin(userRepo, log)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: handler.ErrorHandler,
	})

	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api")
	requireAuth := middleware.RequireAuth(cfg.JWT.Secret, userRepo)

	// ============ PUBLIC ROUTES ============
	users := api.Group("/users")
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	users.Get("/profile", requireAuth, authHandler.GetProfile)
	users.Put("/profile", requireAuth, authHandler.UpdateProfile)
	users.Get("/", requireAuth, middleware.RequirePermission(policy.ResourceUser, policy.ActionRead), userHandler.GetUsers)
	users.Delete("/:id", requireAuth, middleware.RequirePermission(policy.ResourceUser, policy.ActionDelete), userHandler.DeleteUser)

	products := api.Group("/products", requireAuth)
	products.Get("/", middleware.RequirePermission(policy.ResourceProduct, policy.ActionRead), productHandler.GetProducts)
	products.Get("/:id", middleware.RequirePermission(policy.ResourceProduct, policy.ActionRead), productHandler.GetProduct)
	products.Post("/", middleware.RequirePermission(policy.ResourceProduct, policy.ActionCreate), productHandler.CreateProduct)
	products.Put("/:id", middleware.RequirePermission(policy.ResourceProduct, policy.ActionUpdate), productHandler.UpdateProduct)
	products.Delete("/:id", middleware.RequirePermission(policy.ResourceProduct, policy.ActionDelete), productHandler.DeleteProduct)

	categories := api.Group("/categories", requireAuth)
	categories.Get("/", middleware.RequirePermission(policy.ResourceCategory, policy.ActionRead), categoryHandler.GetCategories)
	categories.Get("/:id", middleware.RequirePermission(policy.ResourceCategory, policy.ActionRead), categoryHandler.GetCategory)
	categories.Post("/", middleware.RequirePermission(policy.ResourceCategory, policy.ActionCreate), categoryHandler.CreateCategory)
	categories.Put("/:id", middleware.RequirePermission(policy.ResourceCategory, policy.ActionUpdate), categoryHandler.UpdateCategory)
	categories.Delete("/:id", middleware.RequirePermission(policy.ResourceCategory, policy.ActionDelete), categoryHandler.DeleteCategory)

	suppliers := api.Group("/suppliers", requireAuth)
	suppliers.Get("/", middleware.RequirePermission(policy.ResourceSupplier, policy.ActionRead), supplierHandler.GetSuppliers)
	suppliers.Get("/:id", middleware.RequirePermission(policy.ResourceSupplier, policy.ActionRead), supplierHandler.GetSupplier)
	suppliers.Post("/", middleware.RequirePermission(policy.ResourceSupplier, policy.ActionCreate), supplierHandler.CreateSupplier)
	suppliers.Put("/:id", middleware.RequirePermission(policy.ResourceSupplier, policy.ActionUpdate), supplierHandler.UpdateSupplier)
	suppliers.Delete("/:id", middleware.RequirePermission(policy.ResourceSupplier, policy.ActionDelete), supplierHandler.DeleteSupplier)

	sales := api.Group("/sales", requireAuth)
	sales.Get("/", middleware.RequirePermission(policy.ResourceSale, policy.ActionRead), saleHandler.GetSales)
	sales.Get("/filter/daterange", middleware.RequirePermission(policy.ResourceSale, policy.ActionRead), saleHandler.GetSalesByDateRange)
	sales.Get("/:id", middleware.RequirePermission(policy.ResourceSale, policy.ActionRead), saleHandler.GetSale)
	sales.Post("/", middleware.RequirePermission(policy.ResourceSale, policy.ActionCreate), saleHandler.CreateSale)
	sales.Delete("/:id", middleware.RequirePermission(policy.ResourceSale, policy.ActionDelete), saleHandler.DeleteSale)

	analytics := api.Group("/analytics", requireAuth)
	analytics.Get("/summary", analyticsHandler.GetSummary)
	analytics.Get("/monthly-sales", analyticsHandler.GetMonthlySales)
	analytics.Get("/category-distribution", analyticsHandler.GetCategoryDistribution)
	analytics.Get("/recent-sales", analyticsHandler.GetRecentSales)
	analytics.Get("/top-products", analyticsHandler.GetTopProducts)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Info().Str("addr", addr).Msg("server listening")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// seedAdmin creates the default admin account if no user holds it yet.
func seedAdmin(userRepo repository.UserRepository, log zerolog.Logger) {
	email := "admin@example.com"
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Name:  "Administrator",
		Email: email,
		Role:  model.RoleAdmin,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		log.Warn().Err(err).Msg("failed to hash admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("failed to create admin user")
		return
	}
	log.Info().Str("email", email).Msg("admin user created")
}
