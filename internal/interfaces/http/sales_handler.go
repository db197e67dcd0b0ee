package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/davidmparra/libreria-api/internal/application/dto"
	"github.com/davidmparra/libreria-api/internal/application/sales"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
)

// SalesHandler maneja las peticiones HTTP de ventas y rankings.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// CreateSale godoc
// @Summary  Registrar venta (congela el precio y descuenta stock atómicamente)
// @Tags     sales
// @Security Bearer
// @Router   /api/sales [post]
func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.RecordSale(c.Context(), sales.SaleInput{
		BookID:   in.BookID,
		Quantity: in.Quantity,
		SoldAt:   in.SoldAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	s := result.Sale
	log.Info().
		Str("sale_id", s.ID).
		Str("book_id", s.BookID).
		Int64("quantity", s.Quantity).
		Str("unit_price", s.UnitPrice.String()).
		Int64("new_stock", result.NewQuantity).
		Msg("venta registrada")
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{
		ID:        s.ID,
		BookID:    s.BookID,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		SoldAt:    s.SoldAt,
		CreatedAt: s.CreatedAt,
		NewStock:  result.NewQuantity,
	})
}

// ListSalesByBook godoc
// @Summary  Historial de ventas de un libro
// @Tags     sales
// @Router   /api/books/{id}/sales [get]
func (h *SalesHandler) ListSalesByBook(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByBook(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SaleResponse{
			ID:        s.ID,
			BookID:    s.BookID,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			SoldAt:    s.SoldAt,
			CreatedAt: s.CreatedAt,
		})
	}
	return c.JSON(out)
}

// TopSales godoc
// @Summary  Libros más vendidos en un periodo (1w, 1m, 3m, 6m, 1y, 5y, all)
// @Tags     sales
// @Router   /api/sales/top [get]
func (h *SalesHandler) TopSales(c *fiber.Ctx) error {
	list, err := h.uc.TopSales(c.Context(), c.Query("period"), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTopSalesResponse(list))
}

// TopSalesByGenre godoc
// @Summary  Más vendidos dentro de un género
// @Tags     sales
// @Router   /api/sales/top/by-genre [get]
func (h *SalesHandler) TopSalesByGenre(c *fiber.Ctx) error {
	list, err := h.uc.TopSalesByGenre(c.Context(), c.Query("genre_id"), c.Query("period"), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTopSalesResponse(list))
}

func toTopSalesResponse(list []*entity.TopSale) []dto.TopSaleResponse {
	out := make([]dto.TopSaleResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TopSaleResponse{
			BookID:        t.BookID,
			Title:         t.Title,
			Author:        t.Author,
			TotalQuantity: t.TotalQuantity,
		})
	}
	return out
}
