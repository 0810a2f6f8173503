package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// state datos de la tienda en memoria. Los valores se copian al leer y al escribir.
type state struct {
	batches       map[string]*entity.InventoryBatch
	ledger        []*entity.StockLedgerEntry
	orders        map[string]*entity.SalesOrder
	orderItems    map[string][]*entity.SalesOrderItem
	shipments     map[string]*entity.Shipment
	shipmentItems map[string][]*entity.ShipmentItem
	shipmentCosts map[string][]*entity.ShipmentCost
	products      map[string]*entity.Product
	variants      map[string]*entity.Variant
	prices        map[priceKey]*entity.VariantPrice
	customers     map[string]*entity.Customer
	warehouses    map[string]*entity.Warehouse
	loyalty       []*entity.LoyaltyTransaction
}

type priceKey struct {
	variantID string
	channel   entity.Channel
}

func newState() *state {
	return &state{
		batches:       map[string]*entity.InventoryBatch{},
		orders:        map[string]*entity.SalesOrder{},
		orderItems:    map[string][]*entity.SalesOrderItem{},
		shipments:     map[string]*entity.Shipment{},
		shipmentItems: map[string][]*entity.ShipmentItem{},
		shipmentCosts: map[string][]*entity.ShipmentCost{},
		products:      map[string]*entity.Product{},
		variants:      map[string]*entity.Variant{},
		prices:        map[priceKey]*entity.VariantPrice{},
		customers:     map[string]*entity.Customer{},
		warehouses:    map[string]*entity.Warehouse{},
	}
}

// clone copia los mapas y las estructuras. Los punteros internos de las entidades (ids opcionales,
// decimales opcionales) se comparten: los repos nunca los modifican en sitio.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.batches {
		c.batches[k] = ptr(*v)
	}
	c.ledger = make([]*entity.StockLedgerEntry, len(s.ledger))
	copy(c.ledger, s.ledger)
	for k, v := range s.orders {
		c.orders[k] = ptr(*v)
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = cloneSlice(v)
	}
	for k, v := range s.shipments {
		c.shipments[k] = ptr(*v)
	}
	for k, v := range s.shipmentItems {
		c.shipmentItems[k] = cloneSlice(v)
	}
	for k, v := range s.shipmentCosts {
		c.shipmentCosts[k] = cloneSlice(v)
	}
	for k, v := range s.products {
		c.products[k] = ptr(*v)
	}
	for k, v := range s.variants {
		c.variants[k] = ptr(*v)
	}
	for k, v := range s.prices {
		c.prices[k] = ptr(*v)
	}
	for k, v := range s.customers {
		c.customers[k] = ptr(*v)
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = ptr(*v)
	}
	c.loyalty = make([]*entity.LoyaltyTransaction, len(s.loyalty))
	copy(c.loyalty, s.loyalty)
	return c
}

func ptr[T any](v T) *T { return &v }

func cloneSlice[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		out[i] = ptr(*v)
	}
	return out
}

// Store almacenamiento en memoria para tests y APP_STORAGE=memory (una sola instancia).
// Run serializa las transacciones completas con un mutex y trabaja sobre una copia que solo se
// publica si fn termina sin error.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea una tienda vacía.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado; Commit = reemplazar el estado, Rollback = descartarla.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(reposFor(&view{st: snapshot})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = snapshot
	return nil
}

// Repos repositorios fuera de transacción: cada operación toma el mutex y trabaja sobre el estado
// publicado.
func (s *Store) Repos() repository.Repos {
	return reposFor(&view{store: s})
}

// Analytics repositorio de consultas sobre el estado publicado.
func (s *Store) Analytics() repository.AnalyticsRepository {
	return &AnalyticsRepo{v: &view{store: s}}
}

// view acceso al estado: dentro de Run (st fijo, mutex ya tomado) o directo sobre la tienda.
type view struct {
	store *Store
	st    *state
}

func (v *view) do(fn func(st *state) error) error {
	if v.st != nil {
		return fn(v.st)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.state)
}

func reposFor(v *view) repository.Repos {
	return repository.Repos{
		Batches:    &BatchRepo{v: v},
		Ledger:     &LedgerRepo{v: v},
		Orders:     &SalesOrderRepo{v: v},
		Shipments:  &ShipmentRepo{v: v},
		Products:   &ProductRepo{v: v},
		Customers:  &CustomerRepo{v: v},
		Warehouses: &WarehouseRepo{v: v},
		Loyalty:    &LoyaltyRepo{v: v},
	}
}
