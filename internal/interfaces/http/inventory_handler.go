package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
)

// InventoryHandler maneja el ajuste manual y el historial de inventario de un
// repuesto (protegido).
type InventoryHandler struct {
	adjustUC  *inventory.AdjustStockUseCase
	historyUC *inventory.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjustUC *inventory.AdjustStockUseCase, historyUC *inventory.HistoryUseCase) *InventoryHandler {
	return &InventoryHandler{adjustUC: adjustUC, historyUC: historyUC}
}

// AdjustStock godoc
// @Summary      Ajustar stock de un repuesto
// @Description  Aplica un cambio manual con signo (positivo suma, negativo resta).
// @Description  La razón es obligatoria; el resultado nunca queda negativo y cada
// @Description  ajuste deja su entrada en el historial. Stock insuficiente
// @Description  responde 400 (INSUFFICIENT_STOCK).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "part ID"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity_change (con signo), reason, change_type opcional"
// @Success      200   {object}  dto.StockSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/inventory [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.adjustUC.Adjust(c.Context(), c.Params("id"), GetActor(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetHistory godoc
// @Summary      Historial de inventario de un repuesto
// @Description  Entradas del ledger, más reciente primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "part ID"
// @Param        limit   query  int     false  "máximo por página (defecto 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Param        page    query  int     false  "página base 1 (alias de offset)"
// @Success      200  {object}  dto.HistoryListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/inventory [get]
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	limit, offset := pageFrom(c)
	out, err := h.historyUC.ListByPart(c.Params("id"), GetActor(c), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// VerifyConsistency godoc
// @Summary      Verificar consistencia del ledger
// @Description  Reproduce el historial (suma de cambios) y lo compara con la
// @Description  cantidad materializada del repuesto.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "part ID"
// @Success      200  {object}  dto.LedgerConsistencyDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/inventory/consistency [get]
func (h *InventoryHandler) VerifyConsistency(c *fiber.Ctx) error {
	out, err := h.historyUC.VerifyConsistency(c.Params("id"), GetActor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
