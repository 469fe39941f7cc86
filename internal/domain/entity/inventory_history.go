package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cambio del ledger de inventario.
const (
	ChangeTypeTransaction = "transaction" // aplicado desde una StockTransaction
	ChangeTypeAdjustment  = "adjustment"  // ajuste manual o reversa
	ChangeTypeCorrection  = "correction"  // corrección puntual de alcance elevado
	ChangeTypeInitial     = "initial"     // carga inicial al crear el repuesto
)

// InventoryHistory es una entrada inmutable del ledger de auditoría: exactamente
// una por cambio de cantidad aplicado, nunca se actualiza ni se borra.
// Invariante: NewQuantity = PreviousQuantity + QuantityChange, y NewQuantity >= 0.
type InventoryHistory struct {
	ID     string
	PartID string
	// Denormalizados para que la auditoría sobreviva a cambios del repuesto.
	PartNumber string
	PartName   string
	ChangeType string // ver ChangeType*
	// Opcionales: presentes cuando el cambio proviene de una StockTransaction.
	TransactionType   string
	TransactionID     string
	TransactionNumber string

	PreviousQuantity int64
	QuantityChange   int64 // con signo
	NewQuantity      int64

	Reason          string // obligatorio, no vacío
	Notes           string
	Cost            *decimal.Decimal
	PerformedBy     string
	PerformedByName string
	PerformedAt     time.Time
}
