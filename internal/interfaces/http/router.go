package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davidmparra/libreria-api/internal/application/catalog"
	"github.com/davidmparra/libreria-api/internal/application/ledger"
	"github.com/davidmparra/libreria-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	GenreUC   *catalog.GenreUseCase
	BookUC    *catalog.BookUseCase
	LedgerUC  *ledger.UseCase
	SalesUC   *sales.UseCase
	JWTSecret string
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras
// (catálogo, movimientos, ventas) requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	catalogHandler := NewCatalogHandler(deps.GenreUC, deps.BookUC)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	salesHandler := NewSalesHandler(deps.SalesUC)

	// Catálogo: géneros y libros
	api.Get("/genres", catalogHandler.ListGenres)
	api.Get("/genres/:id", catalogHandler.GetGenre)
	protected.Post("/genres", catalogHandler.CreateGenre)
	protected.Delete("/genres/:id", catalogHandler.DeleteGenre)

	api.Get("/books", catalogHandler.ListBooks)
	api.Get("/books/:id", catalogHandler.GetBook)
	api.Get("/books/:id/sales", salesHandler.ListSalesByBook)
	protected.Post("/books", catalogHandler.CreateBook)
	protected.Put("/books/:id", catalogHandler.UpdateBook)
	protected.Delete("/books/:id", catalogHandler.DeleteBook)

	// Inventario: stock y movimientos
	api.Get("/inventory", inventoryHandler.ListStock)
	api.Get("/inventory/:book_id/quantity", inventoryHandler.GetQuantity)
	api.Get("/inventory/:book_id/movements", inventoryHandler.ListMovements)
	protected.Post("/arrivals", inventoryHandler.CreateArrival)
	protected.Post("/inventory-adjustments", inventoryHandler.CreateAdjustment)

	// Ventas
	api.Get("/sales/top", salesHandler.TopSales)
	api.Get("/sales/top/by-genre", salesHandler.TopSalesByGenre)
	protected.Post("/sales", salesHandler.CreateSale)
}
