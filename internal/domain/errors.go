package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	ErrNonAllocatable    = errors.New("costos de importación no asignables")
	ErrTerminalState     = errors.New("el pedido está en un estado terminal")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrCrossProduct      = errors.New("la variante no pertenece al producto del lote")
	ErrMOQViolation      = errors.New("cantidad por debajo del mínimo de pedido")
	ErrAlreadySorted     = errors.New("el lote ya tiene variante asignada")
	ErrBatchOverDeplete  = errors.New("la cantidad excede el remanente del lote")
	ErrBatchOverCredit   = errors.New("la cantidad excede la cantidad inicial del lote")
	ErrConcurrentRequest = errors.New("operación en curso para el mismo recurso")
)

// InsufficientStockError detalla la variante y el faltante. errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	VariantID string
	Requested decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para la variante %s: solicitado %s, faltan %s",
		e.VariantID, e.Requested.String(), e.Shortfall.String())
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// MOQViolationError línea mayorista por debajo de la cantidad mínima configurada.
type MOQViolationError struct {
	VariantID string
	Quantity  decimal.Decimal
	Minimum   decimal.Decimal
}

func (e *MOQViolationError) Error() string {
	return fmt.Sprintf("la variante %s requiere un mínimo de %s unidades (solicitado %s)",
		e.VariantID, e.Minimum.String(), e.Quantity.String())
}

func (e *MOQViolationError) Is(target error) bool { return target == ErrMOQViolation }

// NonAllocatableError la base de asignación elegida suma cero.
type NonAllocatableError struct {
	Method string
	Reason string
}

func (e *NonAllocatableError) Error() string {
	return fmt.Sprintf("no se pueden asignar los costos por %s: %s", e.Method, e.Reason)
}

func (e *NonAllocatableError) Is(target error) bool { return target == ErrNonAllocatable }
