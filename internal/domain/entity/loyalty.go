package entity

import "time"

// Tipos de transacción de fidelización.
const (
	LoyaltyEarned   = "earned"
	LoyaltyRedeemed = "redeemed"
)

// LoyaltyTransaction puntos ganados o redimidos por un cliente.
type LoyaltyTransaction struct {
	ID         string
	CompanyID  string
	CustomerID string
	OrderID    string
	Type       string
	Points     int64
	CreatedAt  time.Time
}
