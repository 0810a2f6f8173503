package inventory

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// RestorePolicy estrategia para devolver unidades a los lotes.
type RestorePolicy string

const (
	// RestoreExact acredita los mismos lotes que registró el sale_out de la línea.
	RestoreExact RestorePolicy = "exact"
	// RestoreFreshest acredita el lote más reciente de la variante.
	RestoreFreshest RestorePolicy = "freshest"
)

// ParseRestorePolicy valor por defecto: exact.
func ParseRestorePolicy(s string) RestorePolicy {
	if RestorePolicy(s) == RestoreFreshest {
		return RestoreFreshest
	}
	return RestoreExact
}
