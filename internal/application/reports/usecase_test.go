package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/apptest"
	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

var (
	admin   = authz.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	manager = authz.Actor{UserID: "u-manager", Role: entity.RoleManager}
)

// capturePDF retiene el reporte armado en lugar de renderizarlo.
type capturePDF struct {
	report *reports.SalesReport
}

func (c *capturePDF) GenerateSalesReport(_ context.Context, report *reports.SalesReport) ([]byte, error) {
	c.report = report
	return []byte("%PDF-fake"), nil
}

func seedSales(t *testing.T, repo *apptest.MemSales) {
	t.Helper()
	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }
	sales := []*entity.Sale{
		{ID: "s1", InvoiceNo: "20260810-001", Date: day(10), CustomerID: "c1", CustomerName: "Bruno", Total: decimal.NewFromInt(100)},
		{ID: "s2", InvoiceNo: "20260811-001", Date: day(11), CustomerID: "c2", CustomerName: "Ana", Total: decimal.NewFromInt(40)},
		{ID: "s3", InvoiceNo: "20260812-001", Date: day(12), CustomerID: "c1", CustomerName: "Bruno", Total: decimal.NewFromInt(60)},
		{ID: "s4", InvoiceNo: "20260813-001", Date: day(13), CustomerID: "", CustomerName: "", Total: decimal.NewFromInt(15)},
		{ID: "s5", InvoiceNo: "20260901-001", Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), CustomerID: "c1", CustomerName: "Bruno", Total: decimal.NewFromInt(999)},
	}
	for _, s := range sales {
		require.NoError(t, repo.Create(s))
	}
}

func newFixture(t *testing.T) (*reports.UseCase, *capturePDF, *apptest.StubSettings) {
	t.Helper()
	repo := apptest.NewMemSales()
	seedSales(t, repo)
	pdf := &capturePDF{}
	stub := &apptest.StubSettings{S: entity.DefaultSettings("alertas@test")}
	return reports.NewUseCase(repo, stub, pdf), pdf, stub
}

func TestSalesReportPDF_AgrupaPorCliente(t *testing.T) {
	uc, pdf, _ := newFixture(t)

	out, err := uc.SalesReportPDF(context.Background(), admin, dto.SalesReportRequest{
		From: "2026-08-01", To: "2026-08-31", ShowPrices: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	report := pdf.report
	require.NotNil(t, report)
	assert.True(t, report.ShowPrices)
	require.Len(t, report.Groups, 3)

	// Grupos en orden alfabético por nombre; la venta sin cliente va como
	// venta de mostrador.
	assert.Equal(t, "Ana", report.Groups[0].CustomerName)
	assert.Equal(t, "Bruno", report.Groups[1].CustomerName)
	assert.Equal(t, "Venta de mostrador", report.Groups[2].CustomerName)

	assert.True(t, report.Groups[1].Subtotal.Equal(decimal.NewFromInt(160)))
	assert.Len(t, report.Groups[1].Sales, 2)
	assert.True(t, report.GrandTotal.Equal(decimal.NewFromInt(215)), "la venta de septiembre queda fuera")
}

func TestSalesReportPDF_FiltraPorCliente(t *testing.T) {
	uc, pdf, _ := newFixture(t)

	_, err := uc.SalesReportPDF(context.Background(), admin, dto.SalesReportRequest{
		From: "2026-08-01", To: "2026-08-31", CustomerID: "c2",
	})
	require.NoError(t, err)
	require.Len(t, pdf.report.Groups, 1)
	assert.Equal(t, "Ana", pdf.report.Groups[0].CustomerName)
	assert.True(t, pdf.report.GrandTotal.Equal(decimal.NewFromInt(40)))
}

func TestSalesReportPDF_GateDelManager(t *testing.T) {
	uc, _, stub := newFixture(t)

	_, err := uc.SalesReportPDF(context.Background(), manager, dto.SalesReportRequest{
		From: "2026-08-01", To: "2026-08-31",
	})
	assert.ErrorIs(t, err, domain.ErrPermission)

	stub.S.ManagerCanViewReports = true
	_, err = uc.SalesReportPDF(context.Background(), manager, dto.SalesReportRequest{
		From: "2026-08-01", To: "2026-08-31",
	})
	assert.NoError(t, err)
}

func TestSalesReportPDF_RangoInvalido(t *testing.T) {
	uc, _, _ := newFixture(t)
	cases := []dto.SalesReportRequest{
		{From: "", To: "2026-08-31"},
		{From: "2026-08-01", To: "no-es-fecha"},
		{From: "2026-08-31", To: "2026-08-01"},
	}
	for _, in := range cases {
		_, err := uc.SalesReportPDF(context.Background(), admin, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestSalesReportPDF_RangoVacio(t *testing.T) {
	uc, pdf, _ := newFixture(t)
	_, err := uc.SalesReportPDF(context.Background(), admin, dto.SalesReportRequest{
		From: "2025-01-01", To: "2025-01-31",
	})
	require.NoError(t, err)
	assert.Empty(t, pdf.report.Groups)
	assert.True(t, pdf.report.GrandTotal.IsZero())
}
