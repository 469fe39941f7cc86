package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndDepartment(email, departmentID string) (*entity.User, error)
	Update(user *entity.User) error
}
