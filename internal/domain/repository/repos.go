package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Batches    BatchRepository
	Ledger     StockLedgerRepository
	Orders     SalesOrderRepository
	Shipments  ShipmentRepository
	Products   ProductRepository
	Customers  CustomerRepository
	Warehouses WarehouseRepository
	Loyalty    LoyaltyRepository
}
