package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"rentdesk/internal/domain"
)

func TestCustomer_DisplayNameAndDocument(t *testing.T) {
	tests := []struct {
		name     string
		customer domain.Customer
		display  string
		document string
	}{
		{
			name: "natural",
			customer: domain.Customer{Kind: domain.CustomerNatural, Natural: &domain.NaturalPerson{
				FirstName: "Luis", LastName: "Rojas", DocType: "CE", DocNumber: "001234567",
			}},
			display:  "Luis Rojas",
			document: "CE: 001234567",
		},
		{
			name: "business",
			customer: domain.Customer{Kind: domain.CustomerBusiness, Business: &domain.BusinessPerson{
				LegalName: "Inversiones Sur EIRL", TaxID: " 20600000001 ",
			}},
			display:  "Inversiones Sur EIRL",
			document: "RUC: 20600000001",
		},
		{
			name:     "business without data",
			customer: domain.Customer{Kind: domain.CustomerBusiness},
			display:  "Cliente Empresa",
			document: "RUC: 00000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.display, tt.customer.DisplayName())
			assert.Equal(t, tt.document, tt.customer.DocumentString())
		})
	}
}

func TestPlaceholderCustomer(t *testing.T) {
	c := domain.PlaceholderCustomer()
	assert.Equal(t, domain.CustomerNatural, c.Kind)
	assert.Equal(t, "Cliente No Encontrado", c.DisplayName())
	assert.Equal(t, "DNI: 00000000", c.DocumentString())
}

func TestParseCustomerKind(t *testing.T) {
	assert.Equal(t, domain.CustomerNatural, domain.ParseCustomerKind(" natural "))
	assert.Equal(t, domain.CustomerBusiness, domain.ParseCustomerKind("EMPRESA"))
	assert.Equal(t, domain.CustomerBusiness, domain.ParseCustomerKind(""))
}

func TestContract_ReferencedCustomerID(t *testing.T) {
	embedded, plain := uuid.New(), uuid.New()

	c := domain.Contract{CustomerID: &plain}
	assert.Equal(t, plain, *c.ReferencedCustomerID())

	c.Customer = &domain.Customer{ID: embedded}
	assert.Equal(t, embedded, *c.ReferencedCustomerID())

	assert.Nil(t, (&domain.Contract{}).ReferencedCustomerID())
}

func TestInvoiceNumbering(t *testing.T) {
	assert.Equal(t, domain.SeriesBoleta, domain.SeriesFor(domain.InvoiceTypeBoleta))
	assert.Equal(t, domain.SeriesFactura, domain.SeriesFor(domain.InvoiceTypeFactura))
	assert.Equal(t, "000001", domain.FormatCorrelative(1))
	assert.Equal(t, "1234567", domain.FormatCorrelative(1234567))

	inv := domain.Invoice{Series: "F001", Correlative: "000015"}
	assert.Equal(t, "F001-000015", inv.Number())
}

func TestInvoiceAmounts(t *testing.T) {
	tax, total := domain.InvoiceAmounts(decimal.RequireFromString("100.00"))
	assert.True(t, decimal.RequireFromString("18").Equal(tax))
	assert.True(t, decimal.RequireFromString("118").Equal(total))

	tax, total = domain.InvoiceAmounts(decimal.RequireFromString("100.25"))
	assert.Equal(t, "18.05", tax.String())
	assert.Equal(t, "118.3", total.String())
	assert.True(t, tax.Add(decimal.RequireFromString("100.25")).Equal(total))
}

func TestParseReportFormat(t *testing.T) {
	for in, want := range map[string]domain.ReportFormat{
		"":      domain.FormatExcel,
		"xlsx":  domain.FormatExcel,
		"Excel": domain.FormatExcel,
		"csv":   domain.FormatCSV,
	} {
		got, ok := domain.ParseReportFormat(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := domain.ParseReportFormat("pdf")
	assert.False(t, ok)
	assert.Equal(t, "csv", domain.FormatCSV.Extension())
	assert.Equal(t, "xlsx", domain.FormatExcel.Extension())
}

func TestErrorTaxonomy(t *testing.T) {
	verr := domain.NewValidationError(domain.CodeInvertedRange, "end %s before start", "2024-01-01")
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", verr), domain.ErrValidation))
	assert.Equal(t, "end 2024-01-01 before start", verr.Error())

	down := &domain.RemoteError{Service: "customers", Err: errors.New("dial tcp: refused")}
	assert.True(t, errors.Is(down, domain.ErrRemoteUnavailable))
	assert.False(t, errors.Is(down, domain.ErrRemote))
	assert.True(t, down.Unavailable())

	bad := &domain.RemoteError{Service: "customers", Status: 500}
	assert.True(t, errors.Is(bad, domain.ErrRemote))
	assert.Equal(t, "customers responded 500", bad.Error())

	gen := &domain.ReportGenerationError{Report: domain.ReportPayments, Err: errors.New("boom")}
	assert.True(t, errors.Is(gen, domain.ErrReportGeneration))
	assert.Equal(t, "generating PAGOS report: boom", gen.Error())
}
