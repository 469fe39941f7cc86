package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, department_id, part_number, sku, material_code, name, description, category,
		location, quantity, min_stock_level, unit_price, total_value, stock_status,
		total_consumed, average_monthly_usage, last_used_date, status, created_at, updated_at`

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de persistencia para repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste un nuevo repuesto.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.DepartmentID, part.PartNumber, part.SKU, part.MaterialCode,
		part.Name, part.Description, part.Category, part.Location,
		part.Quantity, part.MinStockLevel, part.UnitPrice, part.TotalValue, part.StockStatus,
		part.TotalConsumed, part.AverageMonthlyUsage, part.LastUsedDate,
		part.Status, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	return r.getOne(`SELECT `+partColumns+` FROM parts WHERE id = $1`, id)
}

// GetForUpdate obtiene el repuesto y bloquea la fila (SELECT FOR UPDATE). Solo
// tiene sentido dentro de una transacción del TxRunner.
func (r *PartRepo) GetForUpdate(id string) (*entity.Part, error) {
	return r.getOne(`SELECT `+partColumns+` FROM parts WHERE id = $1 FOR UPDATE`, id)
}

// GetByPartNumber obtiene un repuesto por número de parte.
func (r *PartRepo) GetByPartNumber(partNumber string) (*entity.Part, error) {
	return r.getOne(`SELECT `+partColumns+` FROM parts WHERE part_number = $1`, partNumber)
}

// GetBySKU obtiene un repuesto por SKU.
func (r *PartRepo) GetBySKU(sku string) (*entity.Part, error) {
	return r.getOne(`SELECT `+partColumns+` FROM parts WHERE sku = $1`, sku)
}

func (r *PartRepo) getOne(query string, arg any) (*entity.Part, error) {
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.DepartmentID, &p.PartNumber, &p.SKU, &p.MaterialCode,
		&p.Name, &p.Description, &p.Category, &p.Location,
		&p.Quantity, &p.MinStockLevel, &p.UnitPrice, &p.TotalValue, &p.StockStatus,
		&p.TotalConsumed, &p.AverageMonthlyUsage, &p.LastUsedDate,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// Update actualiza metadatos del repuesto. No toca quantity ni los campos de
// uso: esos se escriben solo vía UpdateStock.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts SET material_code = $2, name = $3, description = $4, category = $5,
			location = $6, min_stock_level = $7, unit_price = $8, total_value = $9,
			stock_status = $10, status = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.MaterialCode, part.Name, part.Description, part.Category,
		part.Location, part.MinStockLevel, part.UnitPrice, part.TotalValue,
		part.StockStatus, part.Status, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// UpdateStock escribe los campos materializados del motor de inventario en una
// sola operación (usado con la fila ya bloqueada por GetForUpdate).
func (r *PartRepo) UpdateStock(partID string, update repository.StockUpdate) error {
	query := `
		UPDATE parts SET quantity = $2, total_value = $3, stock_status = $4,
			total_consumed = $5, average_monthly_usage = $6, last_used_date = $7,
			updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		partID, update.Quantity, update.TotalValue, update.StockStatus,
		update.TotalConsumed, update.AverageMonthlyUsage, update.LastUsedDate,
	)
	if err != nil {
		return fmt.Errorf("update part stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByDepartment lista repuestos de un departamento con paginación.
func (r *PartRepo) ListByDepartment(departmentID string, limit, offset int) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + `
		FROM parts WHERE department_id = $1 ORDER BY part_number LIMIT $2 OFFSET $3`
	return r.list(query, departmentID, limit, offset)
}

// List lista repuestos de todos los departamentos (superadmin).
func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + `
		FROM parts ORDER BY part_number LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *PartRepo) list(query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(
			&p.ID, &p.DepartmentID, &p.PartNumber, &p.SKU, &p.MaterialCode,
			&p.Name, &p.Description, &p.Category, &p.Location,
			&p.Quantity, &p.MinStockLevel, &p.UnitPrice, &p.TotalValue, &p.StockStatus,
			&p.TotalConsumed, &p.AverageMonthlyUsage, &p.LastUsedDate,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Deactivate desactiva el repuesto (soft-disable); con historial nunca hay borrado duro.
func (r *PartRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE parts SET status = 'inactive', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
