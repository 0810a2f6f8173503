package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria; SKU único por empresa en productos y variantes.
type ProductRepo struct {
	v *view
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.v.do(func(st *state) error {
		for _, p := range st.products {
			if p.ID == product.ID || (p.CompanyID == product.CompanyID && p.SKU == product.SKU) {
				return domain.ErrDuplicate
			}
		}
		st.products[product.ID] = ptr(*product)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = ptr(*p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	err := r.v.do(func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == companyID {
				all = append(all, ptr(*p))
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), err
}

func (r *ProductRepo) CreateVariant(_ context.Context, variant *entity.Variant) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[variant.ProductID]; !ok {
			return domain.ErrNotFound
		}
		for _, v := range st.variants {
			if v.ID == variant.ID || (v.CompanyID == variant.CompanyID && v.SKU == variant.SKU) {
				return domain.ErrDuplicate
			}
		}
		st.variants[variant.ID] = ptr(*variant)
		return nil
	})
}

func (r *ProductRepo) GetVariant(_ context.Context, id string) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.v.do(func(st *state) error {
		if v, ok := st.variants[id]; ok {
			out = ptr(*v)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListVariants(_ context.Context, productID string) ([]*entity.Variant, error) {
	var out []*entity.Variant
	err := r.v.do(func(st *state) error {
		for _, v := range st.variants {
			if v.ProductID == productID {
				out = append(out, ptr(*v))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, err
}

func (r *ProductRepo) UpsertVariantPrice(_ context.Context, price *entity.VariantPrice) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.variants[price.VariantID]; !ok {
			return domain.ErrNotFound
		}
		st.prices[priceKey{price.VariantID, price.Channel}] = ptr(*price)
		return nil
	})
}

func (r *ProductRepo) GetVariantPrice(_ context.Context, variantID string, channel entity.Channel) (*entity.VariantPrice, error) {
	var out *entity.VariantPrice
	err := r.v.do(func(st *state) error {
		if p, ok := st.prices[priceKey{variantID, channel}]; ok {
			out = ptr(*p)
		}
		return nil
	})
	return out, err
}

func page[T any](all []*T, limit, offset int) []*T {
	if offset >= len(all) {
		return []*T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
