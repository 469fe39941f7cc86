package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Mantenimiento-api/internal/domain/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// ItemResult resultado de una línea: éxito con la cantidad resultante, o el
// error que la dejó sin aplicar.
type ItemResult struct {
	PartID      string
	PartNumber  string
	NewQuantity int64
	Err         error
}

// Success indica si la línea aplicó.
func (r ItemResult) Success() bool { return r.Err == nil }

// BatchResult agregado de aplicar (o reversar) una transacción. El fallo
// parcial es válido: las líneas que aplicaron quedan confirmadas y las
// fallidas se reportan; la política de qué hacer con eso es del llamador.
type BatchResult struct {
	TotalUpdated int
	TotalFailed  int
	Results      []ItemResult
}

// Success indica que ninguna línea falló.
func (b BatchResult) Success() bool { return b.TotalFailed == 0 }

// ApplyTransactionUseCase aplica los efectos de una StockTransaction sobre los
// repuestos: por cada línea, de forma atómica e independiente, bloquea la fila
// del repuesto, calcula el delta, rechaza cantidades negativas y escribe el
// nuevo estado junto con su entrada de ledger.
//
// No hay guarda de idempotencia aquí: invocarlo dos veces con la misma
// transacción duplica el efecto. El llamador garantiza como-máximo-una-vez
// aplicando solo en la transición approved→completed, y puede reconciliar con
// InventoryHistoryRepository.ExistsForTransaction antes de reintentar.
type ApplyTransactionUseCase struct {
	txRunner TxRunner
}

// NewApplyTransactionUseCase construye el caso de uso.
func NewApplyTransactionUseCase(txRunner TxRunner) *ApplyTransactionUseCase {
	return &ApplyTransactionUseCase{txRunner: txRunner}
}

// ApplyTransaction aplica los efectos de inventario de la transacción.
// Precondición: status approved o completed; si no, falla el lote completo con
// ErrInvalidState sin intentar ninguna línea.
func (uc *ApplyTransactionUseCase) ApplyTransaction(ctx context.Context, tx *entity.StockTransaction, actor entity.Actor) (*BatchResult, error) {
	if tx == nil {
		return nil, domain.ErrInvalidInput
	}
	if tx.Status != entity.TransactionStatusApproved && tx.Status != entity.TransactionStatusCompleted {
		return nil, fmt.Errorf("%w: no se puede procesar inventario de una transacción sin aprobar", domain.ErrInvalidState)
	}

	result := &BatchResult{Results: make([]ItemResult, 0, len(tx.Items))}
	for _, item := range tx.Items {
		delta, err := domaininv.ComputeDelta(tx.TransactionType, item.Quantity)
		if err != nil {
			result.Results = append(result.Results, ItemResult{PartID: item.PartID, PartNumber: item.PartNumber, Err: err})
			result.TotalFailed++
			continue
		}
		res := uc.applyItem(ctx, tx, item, delta, entity.ChangeTypeTransaction, reasonFor(tx), actor)
		result.Results = append(result.Results, res)
		if res.Err != nil {
			result.TotalFailed++
		} else {
			result.TotalUpdated++
		}
	}
	return result, nil
}

// applyItem ejecuta el camino atómico de una línea: cada línea es su propia
// transacción de BD (no hay atomicidad entre líneas, por diseño).
func (uc *ApplyTransactionUseCase) applyItem(ctx context.Context, tx *entity.StockTransaction, item entity.TransactionItem, delta int64, changeType, reason string, actor entity.Actor) ItemResult {
	res := ItemResult{PartID: item.PartID, PartNumber: item.PartNumber}
	res.Err = uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, historyRepo repository.InventoryHistoryRepository) error {
		newQty, err := ApplyDelta(partRepo, historyRepo, item.PartID, delta, actor, LedgerEntry{
			ChangeType:        changeType,
			TransactionType:   tx.TransactionType,
			TransactionID:     tx.ID,
			TransactionNumber: tx.TransactionNumber,
			Reason:            reason,
			Notes:             item.Notes,
			Cost:              &item.TotalCost,
		})
		if err != nil {
			return err
		}
		res.NewQuantity = newQty
		return nil
	})
	return res
}

// LedgerEntry datos de auditoría que acompañan un delta al aplicarse.
type LedgerEntry struct {
	ChangeType        string
	TransactionType   string
	TransactionID     string
	TransactionNumber string
	Reason            string
	Notes             string
	Cost              *decimal.Decimal
}

// ApplyDelta es el camino atómico compartido por el orquestador, la reversa y
// el ajuste manual: con la fila del repuesto bloqueada, valida alcance y
// no-negatividad, materializa los campos derivados y agrega la entrada del
// ledger. Debe invocarse con repositorios atados a una misma transacción de BD.
func ApplyDelta(partRepo repository.PartRepository, historyRepo repository.InventoryHistoryRepository, partID string, delta int64, actor entity.Actor, entry LedgerEntry) (int64, error) {
	part, err := partRepo.GetForUpdate(partID)
	if err != nil {
		return 0, err
	}
	if part == nil {
		return 0, domain.ErrNotFound
	}
	if !actor.CanAccessDepartment(part.DepartmentID) {
		return 0, domain.ErrForbidden
	}

	newQty := part.Quantity + delta
	if newQty < 0 {
		return 0, fmt.Errorf("%w: disponible %d, cambio solicitado %d", domain.ErrInsufficientStock, part.Quantity, delta)
	}

	now := time.Now()
	update := repository.StockUpdate{
		Quantity:            newQty,
		TotalValue:          part.UnitPrice.Mul(decimal.NewFromInt(newQty)),
		StockStatus:         domaininv.StockStatusFor(newQty, part.MinStockLevel),
		TotalConsumed:       part.TotalConsumed,
		AverageMonthlyUsage: part.AverageMonthlyUsage,
		LastUsedDate:        part.LastUsedDate,
	}
	if delta < 0 {
		update.TotalConsumed = part.TotalConsumed + (-delta)
		update.LastUsedDate = &now
		update.AverageMonthlyUsage = domaininv.AverageMonthlyUsage(update.TotalConsumed, part.CreatedAt, now)
	}
	if err := partRepo.UpdateStock(part.ID, update); err != nil {
		return 0, err
	}

	hist := &entity.InventoryHistory{
		ID:                uuid.New().String(),
		PartID:            part.ID,
		PartNumber:        part.PartNumber,
		PartName:          part.Name,
		ChangeType:        entry.ChangeType,
		TransactionType:   entry.TransactionType,
		TransactionID:     entry.TransactionID,
		TransactionNumber: entry.TransactionNumber,
		PreviousQuantity:  part.Quantity,
		QuantityChange:    delta,
		NewQuantity:       newQty,
		Reason:            entry.Reason,
		Notes:             entry.Notes,
		PerformedBy:       actor.ID,
		PerformedByName:   actor.Name,
		PerformedAt:       now,
	}
	if entry.Cost != nil {
		c := *entry.Cost
		hist.Cost = &c
	}
	if err := historyRepo.Create(hist); err != nil {
		return 0, err
	}
	return newQty, nil
}

// reasonFor deriva la razón de auditoría desde la transacción.
func reasonFor(tx *entity.StockTransaction) string {
	if tx.Description != "" {
		return fmt.Sprintf("Transacción %s: %s", tx.TransactionNumber, tx.Description)
	}
	return fmt.Sprintf("Transacción %s (%s)", tx.TransactionNumber, tx.TransactionType)
}

// IsInsufficientStock clasifica el error de una línea para los handlers.
func IsInsufficientStock(err error) bool {
	return errors.Is(err, domain.ErrInsufficientStock)
}
