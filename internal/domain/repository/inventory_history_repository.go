package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// InventoryHistoryRepository define el puerto del ledger de auditoría (DIP).
// El ledger es append-only: no existen Update ni Delete.
type InventoryHistoryRepository interface {
	Create(entry *entity.InventoryHistory) error
	ListByPart(partID string, limit, offset int) ([]*entity.InventoryHistory, error)
	CountByPart(partID string) (int, error)
	// SumChanges reproduce la cantidad materializada sumando todos los cambios
	// del repuesto (oráculo de consistencia del ledger).
	SumChanges(partID string) (int64, error)
	// ExistsForTransaction permite a los llamadores reconciliar antes de
	// reintentar: true si la transacción ya dejó una entrada para el repuesto.
	ExistsForTransaction(partID, transactionID string) (bool, error)
}
