package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// DepartmentUseCase administración de departamentos. Crear y actualizar son
// operaciones de superadmin; la lectura está abierta a cualquier autenticado
// porque el departamento es la frontera de autorización, no un dato sensible.
type DepartmentUseCase struct {
	departmentRepo repository.DepartmentRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(departmentRepo repository.DepartmentRepository) *DepartmentUseCase {
	return &DepartmentUseCase{departmentRepo: departmentRepo}
}

// Create crea un departamento con código corto único.
func (uc *DepartmentUseCase) Create(actor entity.Actor, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	if existing, err := uc.departmentRepo.GetByCode(in.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	dept := &entity.Department{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Manager:   in.Manager,
		Location:  in.Location,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.departmentRepo.Create(dept); err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// GetByID obtiene un departamento.
func (uc *DepartmentUseCase) GetByID(id string) (*dto.DepartmentResponse, error) {
	dept, err := uc.departmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}
	return toDepartmentResponse(dept), nil
}

// List lista departamentos.
func (uc *DepartmentUseCase) List(limit, offset int) (*dto.DepartmentListResponse, error) {
	depts, err := uc.departmentRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		items = append(items, *toDepartmentResponse(d))
	}
	return &dto.DepartmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica un departamento. El código es inmutable.
func (uc *DepartmentUseCase) Update(actor entity.Actor, id string, in dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	dept, err := uc.departmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		dept.Name = *in.Name
	}
	if in.Manager != nil {
		dept.Manager = *in.Manager
	}
	if in.Location != nil {
		dept.Location = *in.Location
	}
	if in.Status != nil {
		if *in.Status != "active" && *in.Status != "inactive" {
			return nil, domain.ErrInvalidInput
		}
		dept.Status = *in.Status
	}
	dept.UpdatedAt = time.Now()

	if err := uc.departmentRepo.Update(dept); err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

func toDepartmentResponse(d *entity.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		Code:      d.Code,
		Manager:   d.Manager,
		Location:  d.Location,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
