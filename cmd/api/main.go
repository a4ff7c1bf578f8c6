package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/handler"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/middleware"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/repository"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/service"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/session"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/ws"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Account{},
		&model.Store{},
		&model.Branch{},
		&model.Product{},
		&model.ProductTax{},
		&model.InventoryRecord{},
	)

	// 3. Seed default account
	seedDefaultAccount(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	accountRepo := repository.NewAccountRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	branchRepo := repository.NewBranchRepo(db)
	productRepo := repository.NewProductRepo(db)
	taxRepo := repository.NewProductTaxRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	sessions := session.NewRegistry(repository.NewSessionTokenStore(db))
	resolver := authz.NewResolver(repository.NewLookup(db))
	gate := authz.NewGate(resolver)
	resourceStore := repository.NewResourceStore(storeRepo, branchRepo, productRepo, taxRepo, inventoryRepo)

	authService := service.NewAuthService(accountRepo, sessions)
	resourceService := service.NewResourceService(gate, resourceStore, wsHub)
	dashService := service.NewDashboardService(statsRepo)

	authHandler := handler.NewAuthHandler(authService)
	storeHandler := handler.NewStoreHandler(resourceService)
	branchHandler := handler.NewBranchHandler(resourceService)
	productHandler := handler.NewProductHandler(resourceService)
	taxHandler := handler.NewProductTaxHandler(resourceService)
	inventoryHandler := handler.NewInventoryHandler(resourceService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Saas Impuestos Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	// Session validation runs first on every route below; no resource logic
	// executes for a stale or missing session.
	protected := api.Group("", middleware.RequireAuth(sessions))

	protected.Get("/dashboard/stats", dashHandler.GetOwnerStats)

	protected.Post("/stores", storeHandler.CreateStore)
	protected.Get("/stores", storeHandler.GetStores)
	protected.Get("/stores/:id", storeHandler.GetStore)
	protected.Put("/stores/:id", storeHandler.UpdateStore)
	protected.Delete("/stores/:id", storeHandler.DeleteStore)

	protected.Post("/branches", branchHandler.CreateBranch)
	protected.Get("/branches", branchHandler.GetBranches)
	protected.Get("/branches/:id", branchHandler.GetBranch)
	protected.Put("/branches/:id", branchHandler.UpdateBranch)
	protected.Delete("/branches/:id", branchHandler.DeleteBranch)

	protected.Post("/products", productHandler.CreateProduct)
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	protected.Post("/product-taxes", taxHandler.CreateProductTax)
	protected.Get("/product-taxes", taxHandler.GetProductTaxes)
	protected.Get("/product-taxes/:id", taxHandler.GetProductTax)
	protected.Put("/product-taxes/:id", taxHandler.UpdateProductTax)
	protected.Delete("/product-taxes/:id", taxHandler.DeleteProductTax)

	protected.Post("/inventory", inventoryHandler.CreateInventoryRecord)
	protected.Get("/inventory", inventoryHandler.GetInventoryRecords)
	protected.Get("/inventory/:id", inventoryHandler.GetInventoryRecord)
	protected.Put("/inventory/:id", inventoryHandler.UpdateInventoryRecord)
	protected.Delete("/inventory/:id", inventoryHandler.DeleteInventoryRecord)

	// WebSocket Route. Session validation runs on the upgrade request, and
	// each connection only receives its own account's events.
	app.Use("/ws", middleware.RequireAuth(sessions), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		raw, _ := c.Locals("account_id").(string)
		accountID, err := uuid.Parse(raw)
		if err != nil {
			c.Close()
			return
		}

		client := ws.NewClient(accountID, c)
		wsHub.Register <- client
		defer func() { wsHub.Unregister <- client }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaultAccount creates a default account if none exists yet
func seedDefaultAccount(db *gorm.DB) {
	email := os.Getenv("DEFAULT_ACCOUNT_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	var count int64
	db.Model(&model.Account{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("DEFAULT_ACCOUNT_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	account := &model.Account{
		Email:    email,
		FullName: "Default Administrator",
		IsActive: true,
	}
	account.CreatedBy = "system"
	account.UpdatedBy = "system"

	if err := account.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash default account password: %v", err)
		return
	}

	if err := db.Create(account).Error; err != nil {
		log.Printf("Warning: Failed to create default account: %v", err)
	} else {
		log.Printf("✅ Default account created: %s", email)
	}
}
