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

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

const departmentColumns = `id, name, code, manager, location, status, created_at, updated_at`

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste un departamento.
func (r *DepartmentRepo) Create(department *entity.Department) error {
	query := `
		INSERT INTO departments (` + departmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		department.ID, department.Name, department.Code, department.Manager,
		department.Location, department.Status, department.CreatedAt, department.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene un departamento por ID.
func (r *DepartmentRepo) GetByID(id string) (*entity.Department, error) {
	return r.getOne(`SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id)
}

// GetByCode obtiene un departamento por su código corto.
func (r *DepartmentRepo) GetByCode(code string) (*entity.Department, error) {
	return r.getOne(`SELECT `+departmentColumns+` FROM departments WHERE code = $1`, code)
}

func (r *DepartmentRepo) getOne(query string, arg any) (*entity.Department, error) {
	var d entity.Department
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&d.ID, &d.Name, &d.Code, &d.Manager, &d.Location, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// List lista departamentos con paginación.
func (r *DepartmentRepo) List(limit, offset int) ([]*entity.Department, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+departmentColumns+` FROM departments ORDER BY code LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.Manager, &d.Location,
			&d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza un departamento existente. El código es inmutable.
func (r *DepartmentRepo) Update(department *entity.Department) error {
	query := `
		UPDATE departments SET name = $2, manager = $3, location = $4, status = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		department.ID, department.Name, department.Manager, department.Location,
		department.Status, department.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
