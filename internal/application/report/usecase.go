package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// PDFGenerator genera el PDF del reporte de valoración.
type PDFGenerator interface {
	ValuationReport(report *dto.ValuationReportDTO) ([]byte, error)
}

// UseCase reportes de inventario del departamento: valoración, bajo stock y
// exportación a PDF.
type UseCase struct {
	reportRepo     repository.ReportRepository
	departmentRepo repository.DepartmentRepository
	pdf            PDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(reportRepo repository.ReportRepository, departmentRepo repository.DepartmentRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{reportRepo: reportRepo, departmentRepo: departmentRepo, pdf: pdf}
}

// Valuation arma el reporte de valoración del departamento indicado (o el del
// actor si viene vacío).
func (uc *UseCase) Valuation(ctx context.Context, actor entity.Actor, departmentID string) (*dto.ValuationReportDTO, error) {
	if departmentID == "" {
		departmentID = actor.DepartmentID
	}
	if !actor.CanAccessDepartment(departmentID) {
		return nil, domain.ErrForbidden
	}
	department, err := uc.departmentRepo.GetByID(departmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.ErrNotFound
	}

	rows, err := uc.reportRepo.ValuationByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	out := &dto.ValuationReportDTO{
		DepartmentID:   departmentID,
		DepartmentName: department.Name,
		TotalValue:     decimal.Zero,
		Items:          make([]dto.ValuationItemDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.TotalParts++
		out.TotalUnits += r.Quantity
		out.TotalValue = out.TotalValue.Add(r.TotalValue)
		switch r.StockStatus {
		case entity.StockStatusLowStock:
			out.LowStockCount++
		case entity.StockStatusOutOfStock:
			out.OutOfStock++
		}
		out.Items = append(out.Items, dto.ValuationItemDTO{
			PartID:      r.PartID,
			PartNumber:  r.PartNumber,
			PartName:    r.PartName,
			Category:    r.Category,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			TotalValue:  r.TotalValue,
			StockStatus: r.StockStatus,
		})
	}
	return out, nil
}

// ValuationPDF genera el reporte de valoración y lo exporta a PDF.
func (uc *UseCase) ValuationPDF(ctx context.Context, actor entity.Actor, departmentID string) ([]byte, error) {
	report, err := uc.Valuation(ctx, actor, departmentID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.ValuationReport(report)
}

// LowStock lista los repuestos en o bajo su nivel mínimo, priorizados: primero
// los agotados, luego por déficit descendente (el orden lo entrega la consulta).
func (uc *UseCase) LowStock(ctx context.Context, actor entity.Actor, departmentID string) ([]dto.LowStockItemDTO, error) {
	if departmentID == "" {
		departmentID = actor.DepartmentID
	}
	if !actor.CanAccessDepartment(departmentID) {
		return nil, domain.ErrForbidden
	}

	rows, err := uc.reportRepo.LowStockParts(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(rows))
	for i, r := range rows {
		out = append(out, dto.LowStockItemDTO{
			PartID:        r.PartID,
			PartNumber:    r.PartNumber,
			PartName:      r.PartName,
			Quantity:      r.Quantity,
			MinStockLevel: r.MinStockLevel,
			Deficit:       r.Deficit,
			UnitPrice:     r.UnitPrice,
			Priority:      i + 1,
		})
	}
	return out, nil
}
