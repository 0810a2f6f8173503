package memory

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo kardex en memoria (slice en orden de inserción).
type LedgerRepo struct {
	v *view
}

func (r *LedgerRepo) Create(_ context.Context, entry *entity.StockLedgerEntry) error {
	return r.v.do(func(st *state) error {
		st.ledger = append(st.ledger, ptr(*entry))
		return nil
	})
}

func (r *LedgerRepo) ListByReference(_ context.Context, companyID, referenceType, referenceID string) ([]*entity.StockLedgerEntry, error) {
	return r.filter(func(e *entity.StockLedgerEntry) bool {
		return e.CompanyID == companyID && e.ReferenceType == referenceType && e.ReferenceID == referenceID
	})
}

func (r *LedgerRepo) ListForLine(_ context.Context, ref entity.Reference, entryType string) ([]*entity.StockLedgerEntry, error) {
	return r.filter(matchLine(ref, entryType))
}

func (r *LedgerRepo) ExistsForLine(_ context.Context, ref entity.Reference, entryType string) (bool, error) {
	found := false
	match := matchLine(ref, entryType)
	err := r.v.do(func(st *state) error {
		for _, e := range st.ledger {
			if match(e) {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

// All todos los asientos; usado por los tests de conservación.
func (r *LedgerRepo) All() []*entity.StockLedgerEntry {
	out, _ := r.filter(func(*entity.StockLedgerEntry) bool { return true })
	return out
}

func matchLine(ref entity.Reference, entryType string) func(e *entity.StockLedgerEntry) bool {
	return func(e *entity.StockLedgerEntry) bool {
		return e.Type == entryType && e.ReferenceType == ref.Type &&
			e.ReferenceID == ref.ID && e.ReferenceLineID == ref.LineID
	}
}

func (r *LedgerRepo) filter(match func(e *entity.StockLedgerEntry) bool) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	err := r.v.do(func(st *state) error {
		for _, e := range st.ledger {
			if match(e) {
				out = append(out, ptr(*e))
			}
		}
		return nil
	})
	return out, err
}
