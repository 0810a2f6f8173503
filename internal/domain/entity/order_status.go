package entity

// OrderStatus estado del pedido (enumeración cerrada).
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderReturned   OrderStatus = "returned"
)

// orderTransitions tabla central estado actual -> estados siguientes permitidos.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled, OrderReturned},
	OrderDelivered:  {OrderReturned},
	OrderCancelled:  nil,
	OrderReturned:   nil,
}

// IsValid indica si el estado pertenece a la enumeración.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal cancelled y returned no admiten más transiciones.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCancelled || s == OrderReturned
}

// CanTransitionTo consulta la tabla de transiciones.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RestoresStock los estados que devuelven la mercancía a los lotes.
func (s OrderStatus) RestoresStock() bool {
	return s == OrderCancelled || s == OrderReturned
}

// AllowedNext devuelve una copia de los estados alcanzables desde s.
func (s OrderStatus) AllowedNext() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}
