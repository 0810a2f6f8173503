package sales

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

var _ CourierNotifier = (*LogCourierNotifier)(nil)

// LogCourierNotifier adaptador por defecto: deja constancia en el log.
type LogCourierNotifier struct {
	log *logger.Logger
}

// NewLogCourierNotifier construye el notificador.
func NewLogCourierNotifier(log *logger.Logger) *LogCourierNotifier {
	return &LogCourierNotifier{log: log}
}

func (n *LogCourierNotifier) NotifyShipped(_ context.Context, order *entity.SalesOrder) error {
	n.log.Info().
		Str("order_id", order.ID).
		Str("warehouse_id", order.WarehouseID).
		Str("customer_id", order.CustomerIDOrEmpty()).
		Msg("pedido despachado: notificación a transportadora")
	return nil
}
