package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk/internal/domain"
)

const totalsLabel = "TOTALES GENERALES:"

var spanishMonths = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func (s *reportService) paymentsTable(rows []domain.PaymentRow, start, end time.Time) *domain.ReportTable {
	t := &domain.ReportTable{
		Title:    fmt.Sprintf("Reporte de Pagos - %s a %s", start.Format(isoDate), end.Format(isoDate)),
		Subtitle: s.generatedSubtitle("Total de registros: %d", len(rows)),
		Sheet:    "Reporte de Pagos",
		Columns: []domain.TableColumn{
			{Header: "N° Comprobante", Kind: domain.CellText},
			{Header: "Fecha Emisión", Kind: domain.CellDateTime},
			{Header: "Tipo", Kind: domain.CellText},
			{Header: "Cliente", Kind: domain.CellText},
			{Header: "Documento", Kind: domain.CellText},
			{Header: "Tipo Cliente", Kind: domain.CellText},
			{Header: "Subtotal", Kind: domain.CellMoney},
			{Header: "IGV", Kind: domain.CellMoney},
			{Header: "Total", Kind: domain.CellMoney},
			{Header: "Estado", Kind: domain.CellText},
			{Header: "Contrato", Kind: domain.CellText},
		},
		Rows: make([][]interface{}, 0, len(rows)),
	}

	subtotal, tax, total := decimal.Zero, decimal.Zero, decimal.Zero
	for i := range rows {
		r := &rows[i]
		t.Rows = append(t.Rows, []interface{}{
			r.InvoiceNumber, r.IssuedAt, string(r.InvoiceType), r.CustomerName, r.CustomerDoc,
			string(r.CustomerKind), r.Subtotal, r.Tax, r.Total, string(r.InvoiceStatus), r.ContractCode,
		})
		subtotal = subtotal.Add(r.Subtotal)
		tax = tax.Add(r.Tax)
		total = total.Add(r.Total)
	}
	t.Totals = [][]interface{}{
		{nil, nil, nil, nil, nil, totalsLabel, subtotal, tax, total},
	}
	return t
}

func (s *reportService) vehicleUsageTable(rows []domain.VehicleUsageRow, start, end time.Time) *domain.ReportTable {
	t := &domain.ReportTable{
		Title:    fmt.Sprintf("Reporte de Uso de Vehículos - %s a %s", start.Format(isoDate), end.Format(isoDate)),
		Subtitle: s.generatedSubtitle("Total de vehículos: %d", len(rows)),
		Sheet:    "Uso de Vehículos",
		Columns: []domain.TableColumn{
			{Header: "Placa", Kind: domain.CellText},
			{Header: "Marca", Kind: domain.CellText},
			{Header: "Modelo", Kind: domain.CellText},
			{Header: "Tipo", Kind: domain.CellText},
			{Header: "Días Alquilados", Kind: domain.CellInt},
			{Header: "Cantidad Contratos", Kind: domain.CellInt},
			{Header: "Total Recaudado", Kind: domain.CellMoney},
			{Header: "% Uso", Kind: domain.CellPercent},
			{Header: "Último Alquiler", Kind: domain.CellDate},
		},
		Rows: make([][]interface{}, 0, len(rows)),
	}

	summary := summarizeUsage(rows, start, end)
	for i := range rows {
		r := &rows[i]
		t.Rows = append(t.Rows, []interface{}{
			r.Plate, r.Brand, r.Model, r.VehicleType, r.RentedDays,
			r.ContractCount, r.Revenue, r.UsagePercent, r.LastRental,
		})
	}
	t.Totals = [][]interface{}{
		{nil, nil, nil, totalsLabel, summary.TotalRentedDays, summary.TotalContracts, summary.TotalRevenue},
		{nil, nil, nil, "VEHÍCULOS CON USO:", summary.VehiclesWithUse},
		{nil, nil, nil, "VEHÍCULOS SIN USO:", summary.VehiclesWithoutUse},
	}
	return t
}

func (s *reportService) revenueTable(rows []domain.RevenueRow, title, sheet string) *domain.ReportTable {
	t := &domain.ReportTable{
		Title:    title,
		Subtitle: s.generatedSubtitle("Período analizado: %d meses", len(rows)),
		Sheet:    sheet,
		Columns: []domain.TableColumn{
			{Header: "Mes", Kind: domain.CellText},
			{Header: "Total Contratos", Kind: domain.CellInt},
			{Header: "Total Ingresos", Kind: domain.CellMoney},
			{Header: "Promedio por Contrato", Kind: domain.CellMoney},
			{Header: "IGV Recaudado", Kind: domain.CellMoney},
			{Header: "Clientes Atendidos", Kind: domain.CellInt},
			{Header: "Vehículos Utilizados", Kind: domain.CellInt},
		},
		Rows: make([][]interface{}, 0, len(rows)),
	}

	var contracts, customers, vehicles int
	revenue, tax := decimal.Zero, decimal.Zero
	for i := range rows {
		r := &rows[i]
		t.Rows = append(t.Rows, []interface{}{
			monthLabel(r.Year, r.Month), r.ContractCount, r.Revenue, r.AvgPerContract,
			r.Tax, r.CustomerCount, r.VehicleCount,
		})
		contracts += r.ContractCount
		customers += r.CustomerCount
		vehicles += r.VehicleCount
		revenue = revenue.Add(r.Revenue)
		tax = tax.Add(r.Tax)
	}
	t.Totals = [][]interface{}{
		{totalsLabel, contracts, revenue, nil, tax, customers, vehicles},
	}
	return t
}

// monthLabel renders a month in Spanish, e.g. "Marzo 2024".
func monthLabel(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return "N/A"
	}
	return fmt.Sprintf("%s %d", spanishMonths[month], year)
}
