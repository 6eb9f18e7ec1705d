package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	defaultBusinessName  = "Cliente Empresa"
	defaultBusinessTaxID = "00000000000"
)

// Customer is a read-only snapshot of a natural or business customer.
// Exactly one of Natural and Business is set, selected by Kind.
type Customer struct {
	ID       uuid.UUID       `json:"id"`
	Kind     CustomerKind    `json:"kind"`
	Natural  *NaturalPerson  `json:"natural,omitempty"`
	Business *BusinessPerson `json:"business,omitempty"`
	Email    string          `json:"email,omitempty"`
	Phone    string          `json:"phone,omitempty"`
	Active   bool            `json:"active"`
}

// NaturalPerson holds the identity fields of an individual customer.
type NaturalPerson struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DocType   string `json:"doc_type"`
	DocNumber string `json:"doc_number"`
}

// BusinessPerson holds the identity fields of a company customer.
type BusinessPerson struct {
	LegalName string `json:"legal_name"`
	TaxID     string `json:"tax_id"`
}

// DisplayName returns the name printed on reports.
func (c *Customer) DisplayName() string {
	switch c.Kind {
	case CustomerNatural:
		if c.Natural == nil {
			return ""
		}
		return strings.TrimSpace(c.Natural.FirstName + " " + c.Natural.LastName)
	default:
		if c.Business == nil || strings.TrimSpace(c.Business.LegalName) == "" {
			return defaultBusinessName
		}
		return c.Business.LegalName
	}
}

// DocumentString returns the identity document printed on reports,
// e.g. "DNI: 12345678" or "RUC: 20123456789".
func (c *Customer) DocumentString() string {
	switch c.Kind {
	case CustomerNatural:
		if c.Natural == nil {
			return ": "
		}
		return c.Natural.DocType + ": " + c.Natural.DocNumber
	default:
		taxID := ""
		if c.Business != nil {
			taxID = strings.TrimSpace(c.Business.TaxID)
		}
		if taxID == "" {
			taxID = defaultBusinessTaxID
		}
		return "RUC: " + taxID
	}
}

// PlaceholderCustomer stands in for a customer that could not be resolved.
func PlaceholderCustomer() Customer {
	return Customer{
		Kind: CustomerNatural,
		Natural: &NaturalPerson{
			FirstName: "Cliente",
			LastName:  "No Encontrado",
			DocType:   "DNI",
			DocNumber: "00000000",
		},
	}
}

// NormalizePlate upper-cases and trims a license plate.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
