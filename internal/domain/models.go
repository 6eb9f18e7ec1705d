package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract is a read-only snapshot served by the contracts service.
type Contract struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty"`
	Customer    *Customer       `json:"customer,omitempty"`
	LineItems   []LineItem      `json:"line_items"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	TotalDays   int             `json:"total_days"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      ContractStatus  `json:"status"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}

// Finalized reports whether the rental has been closed.
func (c *Contract) Finalized() bool {
	return c.Status == ContractFinalized
}

// ReferencedCustomerID returns the customer the contract points at, preferring
// the embedded snapshot's ID.
func (c *Contract) ReferencedCustomerID() *uuid.UUID {
	if c.Customer != nil && c.Customer.ID != uuid.Nil {
		id := c.Customer.ID
		return &id
	}
	return c.CustomerID
}

// LineItem is one vehicle rented within a contract.
type LineItem struct {
	ID         *uuid.UUID      `json:"id,omitempty"`
	VehicleID  *uuid.UUID      `json:"vehicle_id,omitempty"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	RentalDays int             `json:"rental_days"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Plate      *string         `json:"plate,omitempty"`
	Brand      string          `json:"brand"`
	Model      string          `json:"model"`
}

// Vehicle is a read-only snapshot of the reportable fleet.
type Vehicle struct {
	ID     uuid.UUID `json:"id"`
	Plate  *string   `json:"plate,omitempty"`
	Brand  string    `json:"brand"`
	Model  string    `json:"model"`
	Type   string    `json:"type"`
	Status string    `json:"status"`
	Active bool      `json:"active"`
}

// Invoice is a comprobante issued against a finalized contract.
type Invoice struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	ContractID  *uuid.UUID      `db:"contract_id" json:"contract_id"`
	IssuedAt    time.Time       `db:"issued_at" json:"issued_at"`
	Type        InvoiceType     `db:"invoice_type" json:"type"`
	Series      string          `db:"series" json:"series"`
	Correlative string          `db:"correlative" json:"correlative"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
	Tax         decimal.Decimal `db:"tax" json:"tax"`
	Total       decimal.Decimal `db:"total" json:"total"`
	Status      InvoiceStatus   `db:"status" json:"status"`
}

// Number returns the printable invoice number, e.g. "B001-000042".
func (i *Invoice) Number() string {
	return i.Series + "-" + i.Correlative
}

// GeneratedReport is an append-only record of a report having been produced.
type GeneratedReport struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	Type        ReportType   `db:"report_type" json:"type"`
	Format      ReportFormat `db:"format" json:"format"`
	FileName    string       `db:"file_name" json:"file_name"`
	GeneratedAt time.Time    `db:"generated_at" json:"generated_at"`
	GeneratedBy string       `db:"generated_by" json:"generated_by"`
	Parameters  string       `db:"parameters" json:"parameters"`
	SizeBytes   *int64       `db:"size_bytes" json:"size_bytes,omitempty"`
}

// ReportFile is a rendered report ready to be downloaded.
type ReportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
