package domain

import "strings"

// CustomerKind discriminates the Customer variants.
type CustomerKind string

const (
	CustomerNatural  CustomerKind = "NATURAL"
	CustomerBusiness CustomerKind = "EMPRESA"
)

// ParseCustomerKind maps the upstream tag to a CustomerKind. Anything that is
// not NATURAL is treated as a business customer.
func ParseCustomerKind(s string) CustomerKind {
	if strings.EqualFold(strings.TrimSpace(s), string(CustomerNatural)) {
		return CustomerNatural
	}
	return CustomerBusiness
}

// ContractStatus is the lifecycle state reported by the contracts service.
type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVO"
	ContractFinalized ContractStatus = "FINALIZADO"
	ContractCancelled ContractStatus = "CANCELADO"
)

// InvoiceType selects the fiscal document class.
type InvoiceType string

const (
	InvoiceTypeFactura InvoiceType = "FACTURA"
	InvoiceTypeBoleta  InvoiceType = "BOLETA"
)

// Valid reports whether t is a known invoice type.
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeFactura || t == InvoiceTypeBoleta
}

// InvoiceStatus is the lifecycle state of an issued invoice.
type InvoiceStatus string

const (
	InvoiceStatusGenerated InvoiceStatus = "GENERADO"
	InvoiceStatusVoided    InvoiceStatus = "ANULADO"
)

// ReportType tags generated-report audit records.
type ReportType string

const (
	ReportPayments       ReportType = "PAGOS"
	ReportVehicleUsage   ReportType = "USO_VEHICULOS"
	ReportMonthlyRevenue ReportType = "INGRESOS_MENSUALES"
	ReportRangeRevenue   ReportType = "INGRESOS_RANGO"
)

// ReportFormat is the serialization a report was delivered in.
type ReportFormat string

const (
	FormatExcel ReportFormat = "EXCEL"
	FormatCSV   ReportFormat = "CSV"
	FormatJSON  ReportFormat = "JSON"
)

// ParseReportFormat normalizes a requested export format, defaulting to EXCEL.
func ParseReportFormat(s string) (ReportFormat, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(FormatExcel), "XLSX":
		return FormatExcel, true
	case string(FormatCSV):
		return FormatCSV, true
	default:
		return "", false
	}
}

// Extension returns the file extension (without dot) for the format.
func (f ReportFormat) Extension() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return "xlsx"
	}
}

// ContentType returns the MIME type served for the format.
func (f ReportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}
