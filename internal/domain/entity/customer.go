package entity

import "time"

// Customer cliente de la empresa; acumula puntos de fidelización por pedidos entregados.
type Customer struct {
	ID            string
	CompanyID     string
	Name          string
	Email         string
	Phone         string
	LoyaltyPoints int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
