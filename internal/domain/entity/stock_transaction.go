package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock. El tipo determina el signo del delta, salvo
// adjustment, donde el llamador entrega la cantidad ya con signo.
const (
	TransactionTypeReceipt     = "receipt"
	TransactionTypeIssue       = "issue"
	TransactionTypeTransferIn  = "transfer_in"
	TransactionTypeTransferOut = "transfer_out"
	TransactionTypeAdjustment  = "adjustment"
	TransactionTypeScrap       = "scrap"
)

// Estados del ciclo de vida de una StockTransaction.
// draft → pending → approved → completed; draft|pending → cancelled.
const (
	TransactionStatusDraft     = "draft"
	TransactionStatusPending   = "pending"
	TransactionStatusApproved  = "approved"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"
)

// TransactionItem es una línea de una StockTransaction.
type TransactionItem struct {
	PartID       string
	PartNumber   string
	PartName     string
	Quantity     int64 // > 0 para todos los tipos; en adjustment lleva signo
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
	FromLocation string
	ToLocation   string
	Notes        string
}

// StockTransaction es la unidad de trabajo que el usuario crea y aprueba:
// un movimiento de inventario con una o más líneas y ciclo de vida propio.
// Sus efectos sobre el stock se aplican únicamente vía el motor de inventario.
type StockTransaction struct {
	ID                string
	TransactionNumber string // único
	TransactionType   string // inmutable después de crear
	Status            string
	DepartmentID      string
	Items             []TransactionItem

	SourceLocation      string
	DestinationLocation string
	Supplier            string
	Recipient           string
	AssetID             string
	WorkOrderID         string
	Description         string

	// Materializados desde Items (invariantes de §3).
	TotalAmount   decimal.Decimal
	TotalItems    int
	TotalQuantity int64

	CreatedBy      string
	CreatedByName  string
	ApprovedBy     string
	ApprovedByName string
	ApprovedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOutbound indica si el tipo siempre descuenta stock.
func IsOutbound(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIssue, TransactionTypeTransferOut, TransactionTypeScrap:
		return true
	}
	return false
}

// IsInbound indica si el tipo siempre suma stock.
func IsInbound(transactionType string) bool {
	switch transactionType {
	case TransactionTypeReceipt, TransactionTypeTransferIn:
		return true
	}
	return false
}

// ValidTransactionType verifica que el tipo sea uno de los seis conocidos.
func ValidTransactionType(transactionType string) bool {
	return IsInbound(transactionType) || IsOutbound(transactionType) ||
		transactionType == TransactionTypeAdjustment
}

// RecalcTotals recalcula TotalAmount, TotalItems y TotalQuantity desde Items.
func (t *StockTransaction) RecalcTotals() {
	total := decimal.Zero
	var qty int64
	for _, it := range t.Items {
		total = total.Add(it.TotalCost)
		qty += it.Quantity
	}
	t.TotalAmount = total
	t.TotalItems = len(t.Items)
	t.TotalQuantity = qty
}

// CanTransition valida una arista del ciclo de vida.
func (t *StockTransaction) CanTransition(next string) bool {
	switch t.Status {
	case TransactionStatusDraft:
		return next == TransactionStatusPending || next == TransactionStatusCancelled
	case TransactionStatusPending:
		return next == TransactionStatusApproved || next == TransactionStatusCancelled
	case TransactionStatusApproved:
		return next == TransactionStatusCompleted
	}
	// completed y cancelled son terminales para transiciones directas.
	return false
}

// IsDeletable indica si el registro puede borrarse: solo antes de afectar inventario.
func (t *StockTransaction) IsDeletable() bool {
	return t.Status == TransactionStatusDraft || t.Status == TransactionStatusPending
}
