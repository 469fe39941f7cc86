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

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

const workOrderColumns = `id, department_id, order_number, title, description, asset_id,
		priority, status, assigned_to, created_by, completed_at, created_at, updated_at`

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// Create persiste una orden de trabajo.
func (r *WorkOrderRepo) Create(order *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.DepartmentID, order.OrderNumber, order.Title, order.Description,
		nullable(order.AssetID), order.Priority, order.Status, order.AssignedTo,
		order.CreatedBy, order.CompletedAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	var o entity.WorkOrder
	var assetID *string
	err := r.q.QueryRow(context.Background(),
		`SELECT `+workOrderColumns+` FROM work_orders WHERE id = $1`, id).Scan(
		&o.ID, &o.DepartmentID, &o.OrderNumber, &o.Title, &o.Description,
		&assetID, &o.Priority, &o.Status, &o.AssignedTo,
		&o.CreatedBy, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	if assetID != nil {
		o.AssetID = *assetID
	}
	return &o, nil
}

// ListByDepartment lista órdenes de un departamento, opcionalmente por estado.
func (r *WorkOrderRepo) ListByDepartment(departmentID, status string, limit, offset int) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE department_id = $1`
	args := []any{departmentID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrder
	for rows.Next() {
		var o entity.WorkOrder
		var assetID *string
		if err := rows.Scan(&o.ID, &o.DepartmentID, &o.OrderNumber, &o.Title, &o.Description,
			&assetID, &o.Priority, &o.Status, &o.AssignedTo,
			&o.CreatedBy, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		if assetID != nil {
			o.AssetID = *assetID
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualiza una orden existente.
func (r *WorkOrderRepo) Update(order *entity.WorkOrder) error {
	query := `
		UPDATE work_orders SET title = $2, description = $3, priority = $4, status = $5,
			assigned_to = $6, completed_at = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.Title, order.Description, order.Priority, order.Status,
		order.AssignedTo, order.CompletedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
