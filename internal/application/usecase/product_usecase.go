package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

// ProductUseCase catálogo de productos y variantes. El stock y el costo viven en los lotes.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea el producto con sus variantes y precios por canal en una sola transacción.
// SKU repetido en la empresa devuelve ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.Valid() || in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		SKU:       in.SKU,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	variants := make([]*entity.Variant, 0, len(in.Variants))
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		for _, vr := range in.Variants {
			if vr.BasePrice.IsNegative() || !entity.ValidTaxRate(vr.TaxRate) {
				return domain.ErrInvalidInput
			}
			name := vr.Name
			if name == "" {
				name = in.Name
			}
			v := &entity.Variant{
				ID:           uuid.New().String(),
				ProductID:    product.ID,
				CompanyID:    actor.CompanyID,
				SKU:          vr.SKU,
				Name:         name,
				BasePrice:    vr.BasePrice,
				TaxRate:      vr.TaxRate,
				ReorderPoint: vr.ReorderPoint,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := repos.Products.CreateVariant(ctx, v); err != nil {
				return err
			}
			for _, pr := range vr.Prices {
				ch := entity.Channel(pr.Channel)
				if !ch.IsValid() {
					return fmt.Errorf("%w: canal %q", domain.ErrInvalidInput, pr.Channel)
				}
				if err := repos.Products.UpsertVariantPrice(ctx, &entity.VariantPrice{
					VariantID:   v.ID,
					Channel:     ch,
					Price:       pr.Price,
					MinOrderQty: pr.MinOrderQty,
				}); err != nil {
					return err
				}
			}
			variants = append(variants, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, variants), nil
}

// GetByID producto con sus variantes. Productos de otra empresa se reportan como no encontrados.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	variants, err := uc.repo.ListVariants(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, variants), nil
}

// List lista productos por empresa con paginación (sin variantes).
func (uc *ProductUseCase) List(ctx context.Context, actor entity.Actor, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, actor.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product, variants []*entity.Variant) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		SKU:       p.SKU,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, v := range variants {
		out.Variants = append(out.Variants, dto.VariantResponse{
			ID:           v.ID,
			SKU:          v.SKU,
			Name:         v.Name,
			BasePrice:    v.BasePrice,
			TaxRate:      v.TaxRate,
			ReorderPoint: v.ReorderPoint,
		})
	}
	return out
}

