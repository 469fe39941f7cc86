package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenimiento-api/internal/application/report"
)

// ReportHandler maneja los reportes de inventario (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Valuation godoc
// @Summary      Reporte de valoración de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        department_id  query  string  false  "departamento (defecto: el del actor)"
// @Success      200  {object}  dto.ValuationReportDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation(c.Context(), GetActor(c), c.Query("department_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ValuationPDF godoc
// @Summary      Reporte de valoración en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        department_id  query  string  false  "departamento (defecto: el del actor)"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation/pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ValuationPDF(c.Context(), GetActor(c), c.Query("department_id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="valoracion_inventario.pdf"`)
	return c.Send(pdfBytes)
}

// LowStock godoc
// @Summary      Repuestos en o bajo su nivel mínimo
// @Description  Ordenados por urgencia: primero agotados, luego por déficit.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        department_id  query  string  false  "departamento (defecto: el del actor)"
// @Success      200  {array}  dto.LowStockItemDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context(), GetActor(c), c.Query("department_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(out),
		"items": out,
	})
}
