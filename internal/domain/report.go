package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRow is one invoice line of the payments report.
type PaymentRow struct {
	InvoiceNumber string          `json:"invoice_number"`
	IssuedAt      time.Time       `json:"issued_at"`
	InvoiceType   InvoiceType     `json:"invoice_type"`
	CustomerName  string          `json:"customer_name"`
	CustomerDoc   string          `json:"customer_document"`
	CustomerKind  CustomerKind    `json:"customer_kind"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	InvoiceStatus InvoiceStatus   `json:"invoice_status"`
	ContractCode  string          `json:"contract_code"`
}

// VehicleUsageRow aggregates the rentals of one catalog vehicle.
type VehicleUsageRow struct {
	Plate         string          `json:"plate"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	VehicleType   string          `json:"vehicle_type"`
	RentedDays    int             `json:"rented_days"`
	ContractCount int             `json:"contract_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	UsagePercent  float64         `json:"usage_percent"`
	LastRental    *time.Time      `json:"last_rental,omitempty"`
}

// VehicleUsageSummary condenses a vehicle usage report.
type VehicleUsageSummary struct {
	Period             string           `json:"period"`
	TotalVehicles      int              `json:"total_vehicles"`
	VehiclesWithUse    int              `json:"vehicles_with_use"`
	VehiclesWithoutUse int              `json:"vehicles_without_use"`
	TotalRevenue       decimal.Decimal  `json:"total_revenue"`
	TotalRentedDays    int              `json:"total_rented_days"`
	TotalContracts     int              `json:"total_contracts"`
	AvgContracts       float64          `json:"avg_contracts_per_vehicle"`
	MostProfitable     *VehicleUsageRow `json:"most_profitable,omitempty"`
}

// RevenueRow aggregates contracts and invoices of one month, or of a whole
// range labelled with its first month.
type RevenueRow struct {
	Year           int             `json:"year"`
	Month          time.Month      `json:"month"`
	ContractCount  int             `json:"contract_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	AvgPerContract decimal.Decimal `json:"avg_per_contract"`
	Tax            decimal.Decimal `json:"tax"`
	CustomerCount  int             `json:"customer_count"`
	VehicleCount   int             `json:"vehicle_count"`
}

// Period renders the month label, e.g. "2024-03".
func (r *RevenueRow) Period() string {
	return time.Date(r.Year, r.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
