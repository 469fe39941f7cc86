package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItemRequest una línea de la transacción.
// Quantity es magnitud (> 0) para todos los tipos excepto adjustment, donde
// lleva signo y la dirección la decide el llamador.
type TransactionItemRequest struct {
	PartID       string          `json:"part_id" validate:"required"`
	Quantity     int64           `json:"quantity" validate:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	FromLocation string          `json:"from_location,omitempty"`
	ToLocation   string          `json:"to_location,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// CreateTransactionRequest body para POST /api/stock-transactions.
type CreateTransactionRequest struct {
	TransactionType     string                   `json:"transaction_type" validate:"required"`
	Status              string                   `json:"status,omitempty"` // draft (defecto) o pending
	Items               []TransactionItemRequest `json:"items" validate:"required,min=1"`
	SourceLocation      string                   `json:"source_location,omitempty"`
	DestinationLocation string                   `json:"destination_location,omitempty"`
	Supplier            string                   `json:"supplier,omitempty"`
	Recipient           string                   `json:"recipient,omitempty"`
	AssetID             string                   `json:"asset_id,omitempty"`
	WorkOrderID         string                   `json:"work_order_id,omitempty"`
	Description         string                   `json:"description,omitempty"`
}

// TransitionRequest body para PATCH /api/stock-transactions/:id/status.
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// TransactionItemResponse una línea en la salida.
type TransactionItemResponse struct {
	PartID       string          `json:"part_id"`
	PartNumber   string          `json:"part_number"`
	PartName     string          `json:"part_name"`
	Quantity     int64           `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	FromLocation string          `json:"from_location,omitempty"`
	ToLocation   string          `json:"to_location,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// TransactionResponse salida de una transacción de stock.
type TransactionResponse struct {
	ID                  string                    `json:"id"`
	TransactionNumber   string                    `json:"transaction_number"`
	TransactionType     string                    `json:"transaction_type"`
	Status              string                    `json:"status"`
	DepartmentID        string                    `json:"department_id"`
	Items               []TransactionItemResponse `json:"items"`
	SourceLocation      string                    `json:"source_location,omitempty"`
	DestinationLocation string                    `json:"destination_location,omitempty"`
	Supplier            string                    `json:"supplier,omitempty"`
	Recipient           string                    `json:"recipient,omitempty"`
	AssetID             string                    `json:"asset_id,omitempty"`
	WorkOrderID         string                    `json:"work_order_id,omitempty"`
	Description         string                    `json:"description,omitempty"`
	TotalAmount         decimal.Decimal           `json:"total_amount"`
	TotalItems          int                       `json:"total_items"`
	TotalQuantity       int64                     `json:"total_quantity"`
	CreatedBy           string                    `json:"created_by"`
	CreatedByName       string                    `json:"created_by_name"`
	ApprovedBy          string                    `json:"approved_by,omitempty"`
	ApprovedByName      string                    `json:"approved_by_name,omitempty"`
	ApprovedAt          *time.Time                `json:"approved_at,omitempty"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// TransitionResponse transacción actualizada + resultado del lote cuando la
// transición aplicó efectos de inventario (approved→completed).
type TransitionResponse struct {
	Transaction TransactionResponse  `json:"transaction"`
	Batch       *BatchResultResponse `json:"batch,omitempty"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
