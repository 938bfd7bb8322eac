package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/fertipos-api/internal/application/analytics"
	"github.com/jhoicas/fertipos-api/internal/application/auth"
	"github.com/jhoicas/fertipos-api/internal/application/sales"
	"github.com/jhoicas/fertipos-api/internal/application/usecase"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	TenantUC    *usecase.TenantUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	POSUC       *sales.POSSessionUseCase
	SalesUC     *sales.SalesUseCase
	DashboardUC *appanalytics.DashboardUseCase
	TenantCheck tenantChecker
	Resolver    *access.Resolver
	LoginLimit  *IPRateLimiter // opcional
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	can := func(m access.Module, a access.Action) fiber.Handler {
		return RequirePermission(deps.Resolver, m, a)
	}

	// Auth (login público con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC)
	loginChain := []fiber.Handler{authHandler.Login}
	if deps.LoginLimit != nil {
		loginChain = append([]fiber.Handler{RateLimit(deps.LoginLimit)}, loginChain...)
	}
	api.Post("/auth/login", loginChain...)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Tiendas (admin de plataforma)
	tenants := protected.Group("/tenants", RequireRole(string(access.RoleAdmin)))
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Post("/", tenantHandler.Register)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Put("/:id", tenantHandler.Update)
	tenants.Patch("/:id/status", tenantHandler.SetStatus)
	tenants.Delete("/:id", tenantHandler.Delete)

	// Todo lo que sigue opera sobre la tienda del token
	shop := protected.Group("", RequireActiveTenant(deps.TenantCheck))

	shop.Post("/auth/register", can(access.ModuleAdmin, access.ActionCreate), authHandler.Register)
	userHandler := NewUserHandler(deps.UserUC)
	shop.Get("/users", can(access.ModuleAdmin, access.ActionRead), userHandler.List)
	shop.Get("/users/:id", can(access.ModuleAdmin, access.ActionRead), userHandler.GetByID)

	// Products
	products := shop.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", can(access.ModuleProducts, access.ActionCreate), productHandler.Create)
	products.Get("/", can(access.ModuleProducts, access.ActionRead), productHandler.List)
	products.Get("/search", can(access.ModuleProducts, access.ActionRead), productHandler.Search)
	products.Get("/low-stock", can(access.ModuleInventory, access.ActionRead), productHandler.LowStock)
	products.Get("/:id", can(access.ModuleProducts, access.ActionRead), productHandler.GetByID)
	products.Put("/:id", can(access.ModuleProducts, access.ActionUpdate), productHandler.Update)
	products.Delete("/:id", can(access.ModuleProducts, access.ActionDelete), productHandler.Delete)

	// Customers
	customers := shop.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", can(access.ModuleCustomers, access.ActionCreate), customerHandler.Create)
	customers.Get("/", can(access.ModuleCustomers, access.ActionRead), customerHandler.List)
	customers.Get("/search", can(access.ModuleCustomers, access.ActionRead), customerHandler.Search)
	customers.Get("/:id", can(access.ModuleCustomers, access.ActionRead), customerHandler.GetByID)
	customers.Put("/:id", can(access.ModuleCustomers, access.ActionUpdate), customerHandler.Update)
	customers.Delete("/:id", can(access.ModuleCustomers, access.ActionDelete), customerHandler.Delete)

	// Punto de venta: carrito de la sesión
	pos := shop.Group("/pos", can(access.ModuleOrders, access.ActionCreate))
	posHandler := NewPOSHandler(deps.POSUC, deps.ProductUC, deps.CustomerUC)
	pos.Get("/cart", posHandler.GetCart)
	pos.Delete("/cart", posHandler.Clear)
	pos.Post("/cart/items", posHandler.AddItem)
	pos.Put("/cart/items/:productId", posHandler.UpdateQuantity)
	pos.Delete("/cart/items/:productId", posHandler.RemoveItem)
	pos.Put("/cart/customer", posHandler.SelectCustomer)
	pos.Post("/cart/payment", posHandler.BeginPayment)
	pos.Delete("/cart/payment", posHandler.CancelPayment)
	pos.Post("/checkout", posHandler.Checkout)
	pos.Get("/products/search", posHandler.SearchProducts)
	pos.Get("/customers/search", posHandler.SearchCustomers)

	// Ventas registradas
	salesGroup := shop.Group("/sales", can(access.ModuleOrders, access.ActionRead))
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/today", saleHandler.Today)
	salesGroup.Get("/export", can(access.ModuleOrders, access.ActionExport), saleHandler.Export)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	shop.Get("/dashboard/summary", can(access.ModuleDashboard, access.ActionRead), dashboardHandler.GetSummary)
}
