package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/parts/:id/inventory (ajuste manual).
//
// QuantityChange lleva signo SIEMPRE en este endpoint: positivo suma, negativo
// resta. Es el único punto de la API donde el llamador fija la dirección;
// las transacciones de stock derivan el signo del tipo (salvo adjustment).
type AdjustStockRequest struct {
	QuantityChange    int64            `json:"quantity_change" validate:"required"`
	ChangeType        string           `json:"change_type,omitempty"` // adjustment (defecto) o correction
	TransactionType   string           `json:"transaction_type,omitempty"`
	TransactionID     string           `json:"transaction_id,omitempty"`
	TransactionNumber string           `json:"transaction_number,omitempty"`
	Reason            string           `json:"reason" validate:"required,min=1"`
	Location          string           `json:"location,omitempty"` // se conserva en las notas del ledger
	Notes             string           `json:"notes,omitempty"`
	Cost              *decimal.Decimal `json:"cost,omitempty"`
}

// StockSnapshotResponse estado del repuesto después de un ajuste aplicado.
type StockSnapshotResponse struct {
	PartID      string          `json:"part_id"`
	Quantity    int64           `json:"quantity"`
	StockStatus string          `json:"stock_status"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// HistoryEntryResponse una entrada del ledger en la API.
type HistoryEntryResponse struct {
	ID                string           `json:"id"`
	PartID            string           `json:"part_id"`
	PartNumber        string           `json:"part_number"`
	PartName          string           `json:"part_name"`
	ChangeType        string           `json:"change_type"`
	TransactionType   string           `json:"transaction_type,omitempty"`
	TransactionID     string           `json:"transaction_id,omitempty"`
	TransactionNumber string           `json:"transaction_number,omitempty"`
	PreviousQuantity  int64            `json:"previous_quantity"`
	QuantityChange    int64            `json:"quantity_change"`
	NewQuantity       int64            `json:"new_quantity"`
	Reason            string           `json:"reason"`
	Notes             string           `json:"notes,omitempty"`
	Cost              *decimal.Decimal `json:"cost,omitempty"`
	PerformedBy       string           `json:"performed_by"`
	PerformedByName   string           `json:"performed_by_name"`
	PerformedAt       time.Time        `json:"performed_at"`
}

// HistoryListResponse historial paginado de un repuesto, más reciente primero.
type HistoryListResponse struct {
	Items []HistoryEntryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ItemResultResponse resultado por línea al aplicar o reversar una transacción.
type ItemResultResponse struct {
	PartID      string `json:"part_id"`
	PartNumber  string `json:"part_number,omitempty"`
	Success     bool   `json:"success"`
	NewQuantity int64  `json:"new_quantity,omitempty"`
	Code        string `json:"code,omitempty"`
	Message     string `json:"message,omitempty"`
}

// BatchResultResponse agregado del lote: el fallo parcial es esperado y se
// reporta línea a línea sin revertir las que sí aplicaron.
type BatchResultResponse struct {
	Success      bool                 `json:"success"`
	TotalUpdated int                  `json:"total_updated"`
	TotalFailed  int                  `json:"total_failed"`
	Results      []ItemResultResponse `json:"results"`
}

// AvailabilityResponse salida del pre-chequeo de disponibilidad.
type AvailabilityResponse struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}
