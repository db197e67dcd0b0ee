package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davidmparra/libreria-api/internal/application/catalog"
	"github.com/davidmparra/libreria-api/internal/application/dto"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
)

// CatalogHandler maneja las peticiones HTTP de géneros y libros (datos maestros).
type CatalogHandler struct {
	genreUC *catalog.GenreUseCase
	bookUC  *catalog.BookUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(genreUC *catalog.GenreUseCase, bookUC *catalog.BookUseCase) *CatalogHandler {
	return &CatalogHandler{genreUC: genreUC, bookUC: bookUC}
}

// CreateGenre godoc
// @Summary  Crear género
// @Tags     catalog
// @Router   /api/genres [post]
func (h *CatalogHandler) CreateGenre(c *fiber.Ctx) error {
	var in dto.CreateGenreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	genre, err := h.genreUC.Create(c.Context(), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toGenreResponse(genre))
}

// ListGenres godoc
// @Summary  Listar géneros
// @Tags     catalog
// @Router   /api/genres [get]
func (h *CatalogHandler) ListGenres(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: "paginación inválida"})
	}
	page.DefaultPage()
	genres, err := h.genreUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, toGenreResponse(g))
	}
	return c.JSON(out)
}

// GetGenre godoc
// @Summary  Obtener género
// @Tags     catalog
// @Router   /api/genres/{id} [get]
func (h *CatalogHandler) GetGenre(c *fiber.Ctx) error {
	genre, err := h.genreUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toGenreResponse(genre))
}

// DeleteGenre godoc
// @Summary  Eliminar género (protegido si tiene libros)
// @Tags     catalog
// @Router   /api/genres/{id} [delete]
func (h *CatalogHandler) DeleteGenre(c *fiber.Ctx) error {
	if err := h.genreUC.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateBook godoc
// @Summary  Crear libro
// @Tags     catalog
// @Router   /api/books [post]
func (h *CatalogHandler) CreateBook(c *fiber.Ctx) error {
	var in dto.CreateBookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	book, err := h.bookUC.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBookResponse(book))
}

// ListBooks godoc
// @Summary  Listar libros
// @Tags     catalog
// @Router   /api/books [get]
func (h *CatalogHandler) ListBooks(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: "paginación inválida"})
	}
	page.DefaultPage()
	books, err := h.bookUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return c.JSON(out)
}

// GetBook godoc
// @Summary  Obtener libro
// @Tags     catalog
// @Router   /api/books/{id} [get]
func (h *CatalogHandler) GetBook(c *fiber.Ctx) error {
	book, err := h.bookUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookResponse(book))
}

// UpdateBook godoc
// @Summary  Actualizar libro (atributos no ligados al stock)
// @Tags     catalog
// @Router   /api/books/{id} [put]
func (h *CatalogHandler) UpdateBook(c *fiber.Ctx) error {
	var in dto.UpdateBookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	book, err := h.bookUC.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookResponse(book))
}

// DeleteBook godoc
// @Summary  Eliminar libro (protegido si tiene historial)
// @Tags     catalog
// @Router   /api/books/{id} [delete]
func (h *CatalogHandler) DeleteBook(c *fiber.Ctx) error {
	if err := h.bookUC.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toGenreResponse(g *entity.Genre) dto.GenreResponse {
	return dto.GenreResponse{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
}

func toBookResponse(b *entity.Book) dto.BookResponse {
	return dto.BookResponse{
		ID:        b.ID,
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		GenreID:   b.GenreID,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
