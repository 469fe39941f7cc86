package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de inventario.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ValuationByDepartment filas del reporte de valoración: repuestos activos del
// departamento con su valor materializado.
func (r *ReportRepo) ValuationByDepartment(ctx context.Context, departmentID string) ([]repository.ValuationRow, error) {
	query := `
		SELECT id, part_number, name, category, quantity, unit_price, total_value, stock_status
		FROM parts
		WHERE department_id = $1 AND status = 'active'
		ORDER BY total_value DESC, part_number`
	rows, err := r.q.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("valuation query: %w", err)
	}
	defer rows.Close()
	var list []repository.ValuationRow
	for rows.Next() {
		var row repository.ValuationRow
		if err := rows.Scan(&row.PartID, &row.PartNumber, &row.PartName, &row.Category,
			&row.Quantity, &row.UnitPrice, &row.TotalValue, &row.StockStatus); err != nil {
			return nil, fmt.Errorf("scan valuation row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// LowStockParts repuestos en o bajo su nivel mínimo: primero los agotados,
// luego por déficit descendente.
func (r *ReportRepo) LowStockParts(ctx context.Context, departmentID string) ([]repository.LowStockRow, error) {
	query := `
		SELECT id, part_number, name, quantity, min_stock_level,
		       min_stock_level - quantity AS deficit, unit_price
		FROM parts
		WHERE department_id = $1 AND status = 'active' AND quantity <= min_stock_level
		ORDER BY (quantity = 0) DESC, deficit DESC, part_number`
	rows, err := r.q.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("low stock query: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.PartID, &row.PartNumber, &row.PartName,
			&row.Quantity, &row.MinStockLevel, &row.Deficit, &row.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
