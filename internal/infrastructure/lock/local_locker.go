package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/costeo-fifo/internal/application/ports"
	"github.com/jhoicas/costeo-fifo/internal/domain"
)

var _ ports.Locker = (*LocalLocker)(nil)

// LocalLocker lock en proceso para una sola instancia (sin Redis configurado).
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker construye el locker en memoria.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: map[string]struct{}{}}
}

// Obtain no espera: si la clave está tomada devuelve domain.ErrConcurrentRequest.
func (l *LocalLocker) Obtain(_ context.Context, key string) (ports.Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrConcurrentRequest, key)
	}
	l.held[key] = struct{}{}
	return &localLock{owner: l, key: key}, nil
}

type localLock struct {
	owner *LocalLocker
	key   string
	once  sync.Once
}

func (k *localLock) Release(context.Context) error {
	k.once.Do(func() {
		k.owner.mu.Lock()
		delete(k.owner.held, k.key)
		k.owner.mu.Unlock()
	})
	return nil
}
