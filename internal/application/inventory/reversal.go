package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Mantenimiento-api/internal/domain/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// ReverseTransactionUseCase aplica la inversa de una transacción ya completada:
// por cada línea el delta opuesto al original, por el mismo camino atómico.
// Las entradas originales del ledger no se tocan; la reversa deja sus propias
// entradas (changeType adjustment), igual de auditables.
type ReverseTransactionUseCase struct {
	txRunner TxRunner
}

// NewReverseTransactionUseCase construye el caso de uso.
func NewReverseTransactionUseCase(txRunner TxRunner) *ReverseTransactionUseCase {
	return &ReverseTransactionUseCase{txRunner: txRunner}
}

// ReverseTransaction revierte los efectos de una transacción completada.
// Una reversa que dejaría stock negativo falla esa línea con
// ErrInsufficientStock: la no-negatividad no tiene excepciones.
func (uc *ReverseTransactionUseCase) ReverseTransaction(ctx context.Context, tx *entity.StockTransaction, actor entity.Actor) (*BatchResult, error) {
	if tx == nil {
		return nil, domain.ErrInvalidInput
	}
	if tx.Status != entity.TransactionStatusCompleted {
		return nil, fmt.Errorf("%w: solo se revierte una transacción completada", domain.ErrInvalidState)
	}

	reason := "REVERSAL: " + reasonFor(tx)
	result := &BatchResult{Results: make([]ItemResult, 0, len(tx.Items))}
	for _, item := range tx.Items {
		original, err := domaininv.ComputeDelta(tx.TransactionType, item.Quantity)
		if err != nil {
			result.Results = append(result.Results, ItemResult{PartID: item.PartID, PartNumber: item.PartNumber, Err: err})
			result.TotalFailed++
			continue
		}
		inverse := -original

		res := ItemResult{PartID: item.PartID, PartNumber: item.PartNumber}
		res.Err = uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, historyRepo repository.InventoryHistoryRepository) error {
			newQty, err := ApplyDelta(partRepo, historyRepo, item.PartID, inverse, actor, LedgerEntry{
				ChangeType:        entity.ChangeTypeAdjustment,
				TransactionType:   tx.TransactionType,
				TransactionID:     tx.ID,
				TransactionNumber: tx.TransactionNumber,
				Reason:            reason,
			})
			if err != nil {
				return err
			}
			res.NewQuantity = newQty
			return nil
		})
		result.Results = append(result.Results, res)
		if res.Err != nil {
			result.TotalFailed++
		} else {
			result.TotalUpdated++
		}
	}
	return result, nil
}
