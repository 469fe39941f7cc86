package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// AssetUseCase CRUD de activos del departamento.
type AssetUseCase struct {
	assetRepo repository.AssetRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(assetRepo repository.AssetRepository) *AssetUseCase {
	return &AssetUseCase{assetRepo: assetRepo}
}

// Create crea un activo en el departamento del actor.
func (uc *AssetUseCase) Create(actor entity.Actor, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	now := time.Now()
	asset := &entity.Asset{
		ID:           uuid.New().String(),
		DepartmentID: actor.DepartmentID,
		AssetNumber:  in.AssetNumber,
		Name:         in.Name,
		Category:     in.Category,
		Location:     in.Location,
		Status:       "operational",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// GetByID obtiene un activo con el alcance del actor.
func (uc *AssetUseCase) GetByID(actor entity.Actor, id string) (*dto.AssetResponse, error) {
	asset, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// List lista los activos del departamento del actor.
func (uc *AssetUseCase) List(actor entity.Actor, limit, offset int) (*dto.AssetListResponse, error) {
	assets, err := uc.assetRepo.ListByDepartment(actor.DepartmentID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		items = append(items, *toAssetResponse(a))
	}
	return &dto.AssetListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica un activo.
func (uc *AssetUseCase) Update(actor entity.Actor, id string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	asset, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		asset.Name = *in.Name
	}
	if in.Category != nil {
		asset.Category = *in.Category
	}
	if in.Location != nil {
		asset.Location = *in.Location
	}
	if in.Status != nil {
		switch *in.Status {
		case "operational", "under_maintenance", "retired":
			asset.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	asset.UpdatedAt = time.Now()

	if err := uc.assetRepo.Update(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

func (uc *AssetUseCase) scoped(actor entity.Actor, id string) (*entity.Asset, error) {
	asset, err := uc.assetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessDepartment(asset.DepartmentID) {
		return nil, domain.ErrForbidden
	}
	return asset, nil
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:           a.ID,
		DepartmentID: a.DepartmentID,
		AssetNumber:  a.AssetNumber,
		Name:         a.Name,
		Category:     a.Category,
		Location:     a.Location,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
