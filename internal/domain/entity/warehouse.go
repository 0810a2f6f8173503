package entity

import (
	"strings"
	"time"
)

// Warehouse bodega o sucursal donde se reciben y despachan los lotes.
// El código es único por empresa y se guarda en mayúsculas.
type Warehouse struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize recorta espacios y pasa el código a mayúsculas.
func (w *Warehouse) Normalize() {
	w.Code = strings.ToUpper(strings.TrimSpace(w.Code))
	w.Name = strings.TrimSpace(w.Name)
	w.Address = strings.TrimSpace(w.Address)
}

// SameCode indica si otra bodega de la misma empresa usa el mismo código.
func (w *Warehouse) SameCode(other *Warehouse) bool {
	return w.CompanyID == other.CompanyID && strings.EqualFold(w.Code, other.Code)
}
