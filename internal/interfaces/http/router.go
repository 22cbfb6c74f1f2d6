package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// Handlers agrupa los handlers a registrar en el router.
type Handlers struct {
	Auth      *AuthHandler
	Store     *StoreHandler
	Article   *ArticleHandler
	Supplier  *SupplierHandler
	Inventory *InventoryHandler
	Sale      *SaleHandler
}

// RegisterRoutes monta todas las rutas de la API bajo /api/v1.
func RegisterRoutes(app *fiber.App, jwtSecret string, h Handlers) {
	api := app.Group("/api/v1")

	// Rutas públicas
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)

	// Rutas protegidas
	protected := api.Group("", AuthMiddleware(jwtSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Tiendas: lectura para todos, mutación solo admin
	stores := protected.Group("/stores")
	stores.Get("/", h.Store.List)
	stores.Get("/:id", h.Store.GetByID)
	stores.Post("/", adminOnly, h.Store.Create)
	stores.Put("/:id", adminOnly, h.Store.Update)
	stores.Delete("/:id", adminOnly, h.Store.Delete)

	// Artículos: el POST existe solo para rechazar la creación manual
	articles := protected.Group("/articles")
	articles.Get("/", h.Article.List)
	articles.Post("/", h.Article.Create)
	articles.Put("/:id", adminOnly, h.Article.Update)
	articles.Delete("/:id", adminOnly, h.Article.Delete)

	// Proveedores: solo admin
	suppliers := protected.Group("/suppliers", adminOnly)
	suppliers.Get("/", h.Supplier.List)
	suppliers.Post("/", h.Supplier.Create)
	suppliers.Put("/:id", h.Supplier.Update)
	suppliers.Delete("/:id", h.Supplier.Delete)

	// Ledger de inventario
	inventory := protected.Group("/inventory")
	inventory.Post("/transfers", h.Inventory.Transfer)
	inventory.Post("/restock", adminOnly, h.Inventory.Restock)
	inventory.Post("/intake", adminOnly, h.Inventory.Intake)
	inventory.Get("/movements", h.Inventory.ListMovements)
	inventory.Post("/movements/:id/reverse", adminOnly, h.Inventory.Reverse)

	// Ventas
	sales := protected.Group("/sales")
	sales.Post("/", h.Sale.Sell)
	sales.Get("/", h.Sale.History)
	sales.Post("/:id/cancel", h.Sale.Cancel)
}
