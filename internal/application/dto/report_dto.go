package dto

import "github.com/shopspring/decimal"

// ValuationItemDTO una fila del reporte de valoración.
type ValuationItemDTO struct {
	PartID      string          `json:"part_id"`
	PartNumber  string          `json:"part_number"`
	PartName    string          `json:"part_name"`
	Category    string          `json:"category"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalValue  decimal.Decimal `json:"total_value"`
	StockStatus string          `json:"stock_status"`
}

// ValuationReportDTO reporte de valoración de inventario de un departamento.
type ValuationReportDTO struct {
	DepartmentID   string             `json:"department_id"`
	DepartmentName string             `json:"department_name"`
	TotalParts     int                `json:"total_parts"`
	TotalUnits     int64              `json:"total_units"`
	TotalValue     decimal.Decimal    `json:"total_value"`
	LowStockCount  int                `json:"low_stock_count"`
	OutOfStock     int                `json:"out_of_stock_count"`
	Items          []ValuationItemDTO `json:"items"`
}

// LowStockItemDTO repuesto en o bajo su nivel mínimo.
type LowStockItemDTO struct {
	PartID        string          `json:"part_id"`
	PartNumber    string          `json:"part_number"`
	PartName      string          `json:"part_name"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
	Deficit       int64           `json:"deficit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Priority      int             `json:"priority"` // 1 = más urgente
}

// LedgerConsistencyDTO resultado de reproducir el ledger de un repuesto y
// compararlo con la cantidad materializada.
type LedgerConsistencyDTO struct {
	PartID           string `json:"part_id"`
	PartNumber       string `json:"part_number"`
	StoredQuantity   int64  `json:"stored_quantity"`
	ReplayedQuantity int64  `json:"replayed_quantity"`
	Consistent       bool   `json:"consistent"`
	EntryCount       int    `json:"entry_count"`
}
