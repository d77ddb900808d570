package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
)

// ReportHandler maneja la generación de reportes (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesPDF godoc
// @Summary      Reporte de ventas en PDF (manager requiere flag habilitado)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from         query  string  true   "Desde YYYY-MM-DD"
// @Param        to           query  string  true   "Hasta YYYY-MM-DD"
// @Param        customer_id  query  string  false  "Filtrar por cliente"
// @Param        show_prices  query  bool    false  "Incluir columnas de precio"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	in := dto.SalesReportRequest{
		From:       c.Query("from"),
		To:         c.Query("to"),
		CustomerID: c.Query("customer_id"),
		ShowPrices: c.QueryBool("show_prices"),
	}
	pdfBytes, err := h.uc.SalesReportPDF(c.UserContext(), actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas.pdf"`)
	return c.Send(pdfBytes)
}
