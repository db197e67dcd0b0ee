package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/davidmparra/libreria-api/internal/application/dto"
	"github.com/davidmparra/libreria-api/internal/application/ledger"
	"github.com/davidmparra/libreria-api/internal/domain"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP de stock y movimientos.
type InventoryHandler struct {
	uc *ledger.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateArrival godoc
// @Summary  Registrar entrada de stock
// @Tags     inventory
// @Security Bearer
// @Router   /api/arrivals [post]
func (h *InventoryHandler) CreateArrival(c *fiber.Ctx) error {
	var in dto.ArrivalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.RecordMovement(c.Context(), ledger.MovementInput{
		BookID:   in.BookID,
		Type:     entity.MovementTypeARRIVAL,
		Quantity: in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	log.Info().
		Str("book_id", in.BookID).
		Str("type", entity.MovementTypeARRIVAL).
		Int64("quantity", in.Quantity).
		Int64("new_stock", result.NewQuantity).
		Msg("movimiento registrado")
	return c.Status(fiber.StatusCreated).JSON(dto.MovementRecordedResponse{
		MovementID: result.MovementID,
		BookID:     in.BookID,
		Type:       entity.MovementTypeARRIVAL,
		Quantity:   in.Quantity,
		NewStock:   result.NewQuantity,
	})
}

// CreateAdjustment godoc
// @Summary  Registrar ajuste de stock (pérdida o robo, motivo obligatorio)
// @Tags     inventory
// @Security Bearer
// @Router   /api/inventory-adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Type != entity.MovementTypeLOSS && in.Type != entity.MovementTypeTHEFT {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser LOSS o THEFT"})
	}
	result, err := h.uc.RecordMovement(c.Context(), ledger.MovementInput{
		BookID:   in.BookID,
		Type:     in.Type,
		Quantity: in.Quantity,
		Reason:   in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	log.Info().
		Str("book_id", in.BookID).
		Str("type", in.Type).
		Int64("quantity", in.Quantity).
		Int64("new_stock", result.NewQuantity).
		Msg("movimiento registrado")
	return c.Status(fiber.StatusCreated).JSON(dto.MovementRecordedResponse{
		MovementID: result.MovementID,
		BookID:     in.BookID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		NewStock:   result.NewQuantity,
	})
}

// ListStock godoc
// @Summary  Listar inventario actual
// @Tags     inventory
// @Router   /api/inventory [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: "paginación inválida"})
	}
	page.DefaultPage()
	levels, err := h.uc.ListStockLevels(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, lv := range levels {
		out = append(out, dto.StockLevelResponse{
			BookID:    lv.BookID,
			ISBN:      lv.ISBN,
			Title:     lv.Title,
			Author:    lv.Author,
			GenreName: lv.GenreName,
			Quantity:  lv.Quantity,
			UpdatedAt: lv.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// GetQuantity godoc
// @Summary  Cantidad actual de un libro (cero si no tiene movimientos)
// @Tags     inventory
// @Router   /api/inventory/{book_id}/quantity [get]
func (h *InventoryHandler) GetQuantity(c *fiber.Ctx) error {
	bookID := c.Params("book_id")
	qty, err := h.uc.GetQuantity(c.Context(), bookID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.QuantityResponse{BookID: bookID, Quantity: qty})
}

// ListMovements godoc
// @Summary  Historial de movimientos de un libro (filtros por tipo y fecha)
// @Tags     inventory
// @Router   /api/inventory/{book_id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: "filtros inválidos"})
	}
	q.DefaultPage()

	filter, err := movementFilterFromQuery(q)
	if err != nil {
		return respondError(c, err)
	}
	movements, err := h.uc.ListMovements(c.Context(), c.Params("book_id"), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			BookID:    m.BookID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		})
	}
	return c.JSON(out)
}

// movementFilterFromQuery traduce los query params al filtro del repositorio.
// Las fechas van en RFC3339; el orden acepta asc/desc.
func movementFilterFromQuery(q dto.MovementQuery) (repository.MovementFilter, error) {
	f := repository.MovementFilter{Limit: q.Limit, Offset: q.Offset}
	if q.Types != "" {
		for _, t := range strings.Split(q.Types, ",") {
			f.Types = append(f.Types, strings.ToUpper(strings.TrimSpace(t)))
		}
	}
	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return f, domain.ErrInvalidFilter
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return f, domain.ErrInvalidFilter
		}
		f.To = &to
	}
	f.Order = strings.ToUpper(q.Order)
	return f, nil
}
