package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// DepartmentRepository define el puerto de persistencia para Department (DIP).
type DepartmentRepository interface {
	Create(department *entity.Department) error
	GetByID(id string) (*entity.Department, error)
	GetByCode(code string) (*entity.Department, error)
	List(limit, offset int) ([]*entity.Department, error)
	Update(department *entity.Department) error
}
