package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ValuationRow es una fila del reporte de valoración de inventario.
type ValuationRow struct {
	PartID      string
	PartNumber  string
	PartName    string
	Category    string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TotalValue  decimal.Decimal
	StockStatus string
}

// LowStockRow es una fila de la lista de repuestos en o bajo su nivel mínimo,
// ordenada por déficit descendente.
type LowStockRow struct {
	PartID        string
	PartNumber    string
	PartName      string
	Quantity      int64
	MinStockLevel int64
	Deficit       int64
	UnitPrice     decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes de inventario.
type ReportRepository interface {
	ValuationByDepartment(ctx context.Context, departmentID string) ([]ValuationRow, error)
	LowStockParts(ctx context.Context, departmentID string) ([]LowStockRow, error)
}
