package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	domaininv "github.com/jhoicas/costeo-fifo/internal/domain/inventory"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// InventoryHandler ajustes, clasificación de lotes y consultas de existencias (protegido).
type InventoryHandler struct {
	adjustments *inventory.AdjustmentUseCase
	sorter      *inventory.SortUseCase
	valuation   *inventory.ValuationUseCase
	reorder     *inventory.ReplenishmentUseCase
	validate    *RequestValidator
	log         *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	adjustments *inventory.AdjustmentUseCase,
	sorter *inventory.SortUseCase,
	valuation *inventory.ValuationUseCase,
	reorder *inventory.ReplenishmentUseCase,
	v *RequestValidator,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{adjustments: adjustments, sorter: sorter, valuation: valuation, reorder: reorder, validate: v, log: log}
}

// Adjust godoc
// @Summary      Ajuste manual de inventario
// @Description  addition abre un lote al unit_cost indicado; subtraction da de baja por FIFO.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "variante, bodega, tipo y cantidad"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.AdjustmentRequest
	if ok, err := h.validate.bind(c, &in); !ok {
		return err
	}
	res, err := h.adjustments.Register(c.UserContext(), actor, inventory.AdjustmentInput{
		VariantID:   in.VariantID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Reason:      in.Reason,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusCreated, "ajuste registrado", dto.AdjustmentResponse{
		AdjustmentID:   res.AdjustmentID,
		Type:           res.Type,
		Quantity:       res.Quantity,
		BatchID:        res.BatchID,
		CostWrittenOff: res.CostWrittenOff,
	})
}

// Sort godoc
// @Summary      Clasificar lote sin variante
// @Description  Reparte un lote recibido sin variante entre variantes del mismo producto.
//
//	Los lotes nuevos heredan costo, etiqueta, bodega y fecha del origen.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SortRequest  true  "lote origen y reparto"
// @Success      201   {object}  dto.SortResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/sort [post]
func (h *InventoryHandler) Sort(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.SortRequest
	if ok, err := h.validate.bind(c, &in); !ok {
		return err
	}
	allocs := make([]domaininv.SortAllocation, len(in.Allocations))
	for i, a := range in.Allocations {
		allocs[i] = domaininv.SortAllocation{VariantID: a.VariantID, Quantity: a.Quantity}
	}
	res, err := h.sorter.Sort(c.UserContext(), actor, inventory.SortInput{SourceBatchID: in.SourceBatchID, Allocations: allocs})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusCreated, "lote clasificado", dto.SortResponse{
		SortID:          res.SortID,
		SourceBatchID:   res.SourceBatchID,
		SourceRemaining: res.SourceRemaining,
		Batches:         toBatchResponses(res.Batches),
	})
}

// Valuation godoc
// @Summary      Valorización FIFO de una variante
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID de la variante"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Success      200  {object}  dto.ValuationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/variants/{id}/valuation [get]
func (h *InventoryHandler) Valuation(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	variantID, warehouseID := c.Params("id"), c.Query("warehouse_id")
	v, err := h.valuation.Variant(c.UserContext(), actor.CompanyID, variantID, warehouseID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", dto.ValuationResponse{
		VariantID:   variantID,
		WarehouseID: warehouseID,
		OnHand:      v.OnHand,
		FIFOValue:   v.FIFOValue.Round(2),
		AverageCost: v.AverageCost.Round(2),
		Batches:     v.Batches,
	})
}

// Batches godoc
// @Summary      Lotes de una variante
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID de la variante"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}   dto.BatchResponse
// @Router       /api/inventory/variants/{id}/batches [get]
func (h *InventoryHandler) Batches(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	list, err := h.valuation.Batches(c.UserContext(), actor.CompanyID, c.Params("id"), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", toBatchResponses(list))
}

// Ledger godoc
// @Summary      Kardex de un documento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        reference_type  query  string  true  "sales_order, shipment, adjustment, sort"
// @Param        reference_id    query  string  true  "ID del documento"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/ledger [get]
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	entries, err := h.valuation.Ledger(c.UserContext(), actor.CompanyID, c.Query("reference_type"), c.Query("reference_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.LedgerEntryResponse{
			ID:              e.ID,
			BatchID:         e.BatchID,
			VariantID:       deref(e.VariantID),
			Type:            e.Type,
			Quantity:        e.Quantity,
			UnitCost:        e.UnitCost,
			ReferenceType:   e.ReferenceType,
			ReferenceID:     e.ReferenceID,
			ReferenceLineID: e.ReferenceLineID,
			CreatedBy:       e.CreatedBy,
			CreatedAt:       e.CreatedAt,
		}
	}
	return respondOK(c, fiber.StatusOK, "", out)
}

// Unsorted godoc
// @Summary      Lotes pendientes de clasificar
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}   dto.BatchResponse
// @Router       /api/inventory/unsorted [get]
func (h *InventoryHandler) Unsorted(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	list, err := h.valuation.Unsorted(c.UserContext(), actor.CompanyID, c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", toBatchResponses(list))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Variantes con existencias bajo su punto de reorden y la cantidad sugerida de pedido,
//
//	ordenadas por margen estimado y déficit.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = stock global."
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	list, err := h.reorder.GenerateList(c.UserContext(), actor.CompanyID, c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", list)
}

func toBatchResponses(list []*entity.InventoryBatch) []dto.BatchResponse {
	out := make([]dto.BatchResponse, len(list))
	for i, b := range list {
		out[i] = dto.BatchResponse{
			ID:                b.ID,
			ProductID:         b.ProductID,
			VariantID:         deref(b.VariantID),
			WarehouseID:       b.WarehouseID,
			BatchLabel:        b.BatchLabel,
			UnitCost:          b.UnitCost,
			InitialQuantity:   b.InitialQuantity,
			RemainingQuantity: b.RemainingQuantity,
			Source:            b.Source,
			NeedsReview:       b.NeedsReview,
			CreatedAt:         b.CreatedAt,
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
