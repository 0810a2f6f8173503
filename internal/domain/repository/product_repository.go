package repository

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// ProductRepository puerto de persistencia del catálogo (productos, variantes y precios por canal).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)

	CreateVariant(ctx context.Context, variant *entity.Variant) error
	GetVariant(ctx context.Context, id string) (*entity.Variant, error)
	ListVariants(ctx context.Context, productID string) ([]*entity.Variant, error)

	UpsertVariantPrice(ctx context.Context, price *entity.VariantPrice) error
	// GetVariantPrice devuelve nil si la variante no tiene precio propio en el canal.
	GetVariantPrice(ctx context.Context, variantID string, channel entity.Channel) (*entity.VariantPrice, error)
}
