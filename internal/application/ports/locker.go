package ports

import "context"

// Lock lock obtenido sobre un recurso.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker evita que dos reintentos concurrentes del mismo pedido o embarque se ejecuten a la vez.
// Si el recurso ya está tomado devuelve domain.ErrConcurrentRequest. La consistencia de los lotes
// no depende de esto: la garantizan las transacciones y los FOR UPDATE.
type Locker interface {
	Obtain(ctx context.Context, key string) (Lock, error)
}
