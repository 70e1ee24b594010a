package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-admin-portal/internal/config"
	"go-admin-portal/internal/flowcache"
	"go-admin-portal/internal/handler"
	"go-admin-portal/internal/idp"
	"go-admin-portal/internal/middleware"
	"go-admin-portal/internal/model"
	"go-admin-portal/internal/repository"
	"go-admin-portal/internal/seed"
	"go-admin-portal/internal/service"
	"go-admin-portal/pkg/database"
	"go-admin-portal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env + Config
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.Connect(cfg)
	db.AutoMigrate(
		&model.Menu{}, &model.MenuAction{}, &model.Role{}, &model.User{},
		&model.AuthToken{}, &model.HashValidation{},
		&model.Product{}, &model.AuditLog{},
	)

	// 3. Seed menus, preset roles, and the product catalog
	if err := seed.Init(db); err != nil {
		log.Printf("Warning: Failed to seed RBAC data: %v", err)
	}
	if err := seed.InitProducts(db); err != nil {
		log.Printf("Warning: Failed to seed products: %v", err)
	}

	// 4. Redis for the short-lived login-flow state
	rdb := flowcache.NewRedisClient(cfg)
	if rdb == nil {
		log.Println("Warning: Redis unreachable, login flow disabled")
	}
	flows := flowcache.New(rdb, cfg.FlowTTL)

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	menuRepo := repository.NewMenuRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	productRepo := repository.NewProductRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	tokenManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer)
	provider := idp.New(cfg)

	auditService := service.NewAuditService(auditRepo, userRepo)
	userService := service.NewUserService(userRepo, roleRepo, cfg)
	roleService := service.NewRoleService(roleRepo, userRepo, db)
	menuService := service.NewMenuService(menuRepo, db)
	authService := service.NewAuthService(userRepo, tokenRepo, userService, auditService, provider, flows, tokenManager, cfg)
	productService := service.NewProductService(productRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	menuHandler := handler.NewMenuHandler(menuService)
	productHandler := handler.NewProductHandler(productService)
	auditHandler := handler.NewAuditHandler(auditService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Admin Portal API v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Get("/login", authHandler.Login)
	auth.Get("/redirect", authHandler.Redirect)
	auth.Get("/token", authHandler.Token)

	// ============ PROTECTED ROUTES ============
	// Everything below passes the request gate: verified token, matching
	// user header, live session row.
	protected := api.Group("", middleware.RequireAuth(tokenRepo, tokenManager))
	admin := middleware.RequireAdmin(userRepo)

	protected.Get("/auth/logout", authHandler.Logout)

	rbac := protected.Group("/rbac")
	rbac.Get("/my_role", userHandler.GetMyRole)
	rbac.Get("/my_menus", roleHandler.GetMyMenus)

	rbac.Get("/users", userHandler.GetUsers)
	rbac.Get("/users/:id", userHandler.GetUser)
	rbac.Post("/users", admin, userHandler.CreateUser)
	rbac.Put("/users/:id", admin, userHandler.UpdateUser)
	rbac.Delete("/users/:id", admin, userHandler.DeleteUser)
	rbac.Put("/users/:id/role", admin, userHandler.AssignRole)

	rbac.Get("/roles", roleHandler.GetRoles)
	rbac.Get("/roles/:id", roleHandler.GetRole)
	rbac.Post("/roles", admin, roleHandler.CreateRole)
	rbac.Put("/roles/:id", admin, roleHandler.UpdateRole)
	rbac.Delete("/roles/:id", admin, roleHandler.DeleteRole)
	rbac.Get("/roles/:id/menus", roleHandler.GetRoleMenus)
	rbac.Put("/roles/:id/menus", admin, roleHandler.AssignMenus)

	rbac.Get("/menus", menuHandler.GetMenus)
	rbac.Post("/menus", admin, menuHandler.CreateMenu)
	rbac.Put("/menus/:id", admin, menuHandler.UpdateMenu)
	rbac.Delete("/menus/:id", admin, menuHandler.DeleteMenu)

	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", admin, productHandler.CreateProduct)
	protected.Put("/products/:id", admin, productHandler.UpdateProduct)
	protected.Delete("/products/:id", admin, productHandler.DeleteProduct)

	protected.Get("/audit", auditHandler.GetLogs)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
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
