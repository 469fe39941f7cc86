package inventory

import (
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// ComputeDelta calcula el cambio de cantidad con signo para un tipo de
// transacción (servicio de dominio, función pura).
//
//	receipt, transfer_in          → +|quantity|
//	issue, transfer_out, scrap    → -|quantity|
//	adjustment                    → quantity tal cual (el llamador trae el signo)
//
// Para tipos de entrada/salida la cantidad se interpreta como magnitud: los
// llamadores suelen enviar la cantidad de línea en positivo incluso para salidas.
func ComputeDelta(transactionType string, quantity int64) (int64, error) {
	abs := quantity
	if abs < 0 {
		abs = -abs
	}
	switch transactionType {
	case entity.TransactionTypeReceipt, entity.TransactionTypeTransferIn:
		return abs, nil
	case entity.TransactionTypeIssue, entity.TransactionTypeTransferOut, entity.TransactionTypeScrap:
		return -abs, nil
	case entity.TransactionTypeAdjustment:
		return quantity, nil
	}
	return 0, domain.ErrInvalidTransactionType
}
