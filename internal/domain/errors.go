package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrBookNotFound      = errors.New("libro no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	ErrMissingReason     = errors.New("motivo requerido para pérdida o robo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConflict          = errors.New("conflicto de concurrencia, reintentar")
	ErrInvalidFilter     = errors.New("filtro inválido")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrProtected         = errors.New("recurso referenciado, no se puede eliminar")
)
