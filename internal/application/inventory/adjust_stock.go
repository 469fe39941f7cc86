package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// AdjustStockUseCase ajuste manual directo sobre un repuesto
// (POST /api/parts/:id/inventory): mismo camino atómico del motor, con el
// delta firmado tal como lo entrega el llamador.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// Adjust aplica un cambio manual de cantidad. La razón es obligatoria y no
// vacía; change_type correction exige alcance elevado.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, partID string, actor entity.Actor, in dto.AdjustStockRequest) (*dto.StockSnapshotResponse, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityChange == 0 {
		return nil, domain.ErrInvalidInput
	}

	changeType := in.ChangeType
	switch changeType {
	case "":
		changeType = entity.ChangeTypeAdjustment
	case entity.ChangeTypeAdjustment:
	case entity.ChangeTypeCorrection:
		if !actor.IsElevated() {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	// La ubicación no es una columna del ledger; se conserva en las notas.
	notes := in.Notes
	if loc := strings.TrimSpace(in.Location); loc != "" {
		if notes != "" {
			notes += " "
		}
		notes += "[ubicación: " + loc + "]"
	}

	var out dto.StockSnapshotResponse
	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, historyRepo repository.InventoryHistoryRepository) error {
		newQty, err := ApplyDelta(partRepo, historyRepo, partID, in.QuantityChange, actor, LedgerEntry{
			ChangeType:        changeType,
			TransactionType:   in.TransactionType,
			TransactionID:     in.TransactionID,
			TransactionNumber: in.TransactionNumber,
			Reason:            in.Reason,
			Notes:             notes,
			Cost:              in.Cost,
		})
		if err != nil {
			return err
		}
		part, err := partRepo.GetByID(partID)
		if err != nil {
			return err
		}
		out = dto.StockSnapshotResponse{
			PartID:      partID,
			Quantity:    newQty,
			StockStatus: part.StockStatus,
			TotalValue:  part.TotalValue,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
