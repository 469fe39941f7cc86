package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// AssetRepository define el puerto de persistencia para Asset (DIP).
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	ListByDepartment(departmentID string, limit, offset int) ([]*entity.Asset, error)
	Update(asset *entity.Asset) error
}
