package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentdesk/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05.999999999"
)

// wireDate decodes a date without zone ("2024-03-01"). Null or empty stays zero.
type wireDate struct {
	time.Time
}

func (d *wireDate) UnmarshalJSON(b []byte) error {
	t, err := parseWireTime(b, dateLayout, dateTimeLayout)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// wireDateTime decodes a timestamp without zone ("2024-03-01T10:15:30.123").
// A plain date or an RFC 3339 value is accepted as well.
type wireDateTime struct {
	time.Time
}

func (d *wireDateTime) UnmarshalJSON(b []byte) error {
	t, err := parseWireTime(b, dateTimeLayout, time.RFC3339Nano, dateLayout)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func parseWireTime(b []byte, layouts ...string) (time.Time, error) {
	if bytes.Equal(b, []byte("null")) {
		return time.Time{}, nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return time.Time{}, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func (d wireDate) ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d wireDateTime) ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

type contractDTO struct {
	ID         uuid.UUID        `json:"id"`
	Code       string           `json:"codigoContrato"`
	Customer   *customerDTO     `json:"cliente"`
	CustomerID *uuid.UUID       `json:"idCliente"`
	Items      []lineItemDTO    `json:"detalles"`
	StartDate  wireDate         `json:"fechaInicio"`
	EndDate    wireDate         `json:"fechaFin"`
	TotalDays  *int             `json:"diasTotales"`
	Total      *decimal.Decimal `json:"montoTotal"`
	Status     string           `json:"estado"`
	CreatedAt  wireDateTime     `json:"fechaCreacion"`
}

func (d *contractDTO) toDomain() domain.Contract {
	c := domain.Contract{
		ID:         d.ID,
		Code:       d.Code,
		CustomerID: d.CustomerID,
		StartDate:  d.StartDate.ptr(),
		EndDate:    d.EndDate.ptr(),
		Status:     domain.ContractStatus(strings.ToUpper(strings.TrimSpace(d.Status))),
		CreatedAt:  d.CreatedAt.ptr(),
		LineItems:  make([]domain.LineItem, 0, len(d.Items)),
	}
	if d.TotalDays != nil {
		c.TotalDays = *d.TotalDays
	}
	if d.Total != nil {
		c.TotalAmount = *d.Total
	}
	if d.Customer != nil {
		cust := d.Customer.toDomain()
		c.Customer = &cust
	}
	for i := range d.Items {
		c.LineItems = append(c.LineItems, d.Items[i].toDomain())
	}
	return c
}

type lineItemDTO struct {
	ID        *uuid.UUID       `json:"idDetalle"`
	VehicleID *uuid.UUID       `json:"idVehiculo"`
	DailyRate *decimal.Decimal `json:"precioDiario"`
	Days      *int             `json:"diasAlquiler"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
	Plate     *string          `json:"placaVehiculo"`
	Brand     string           `json:"marcaVehiculo"`
	Model     string           `json:"modeloVehiculo"`
}

func (d *lineItemDTO) toDomain() domain.LineItem {
	li := domain.LineItem{
		ID:        d.ID,
		VehicleID: d.VehicleID,
		Brand:     d.Brand,
		Model:     d.Model,
	}
	if d.DailyRate != nil {
		li.DailyRate = *d.DailyRate
	}
	if d.Days != nil {
		li.RentalDays = *d.Days
	}
	if d.Subtotal != nil {
		li.Subtotal = *d.Subtotal
	}
	if d.Plate != nil && strings.TrimSpace(*d.Plate) != "" {
		plate := domain.NormalizePlate(*d.Plate)
		li.Plate = &plate
	}
	return li
}

type invoiceDTO struct {
	ID          uuid.UUID       `json:"idComprobante"`
	ContractID  *uuid.UUID      `json:"idContrato"`
	IssuedAt    wireDateTime    `json:"fechaEmision"`
	Type        string          `json:"tipoComprobante"`
	Series      string          `json:"numeroSerie"`
	Correlative string          `json:"numeroCorrelativo"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"igv"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"estado"`
}

func (d *invoiceDTO) toDomain() domain.Invoice {
	return domain.Invoice{
		ID:          d.ID,
		ContractID:  d.ContractID,
		IssuedAt:    d.IssuedAt.Time,
		Type:        domain.InvoiceType(strings.ToUpper(d.Type)),
		Series:      d.Series,
		Correlative: d.Correlative,
		Subtotal:    d.Subtotal,
		Tax:         d.Tax,
		Total:       d.Total,
		Status:      domain.InvoiceStatus(strings.ToUpper(d.Status)),
	}
}

type customerDTO struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"tipoCliente"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	DocType   string    `json:"tipoDocumento"`
	DocNumber string    `json:"numeroDocumento"`
	LegalName string    `json:"razonSocial"`
	TaxID     string    `json:"ruc"`
	Email     string    `json:"correo"`
	Phone     string    `json:"telefono"`
	Active    *bool     `json:"activo"`
}

func (d *customerDTO) toDomain() domain.Customer {
	c := domain.Customer{
		ID:     d.ID,
		Kind:   domain.ParseCustomerKind(d.Kind),
		Email:  d.Email,
		Phone:  d.Phone,
		Active: d.Active == nil || *d.Active,
	}
	if c.Kind == domain.CustomerNatural {
		c.Natural = &domain.NaturalPerson{
			FirstName: d.FirstName,
			LastName:  d.LastName,
			DocType:   d.DocType,
			DocNumber: d.DocNumber,
		}
	} else {
		c.Business = &domain.BusinessPerson{
			LegalName: d.LegalName,
			TaxID:     d.TaxID,
		}
	}
	return c
}

type vehicleDTO struct {
	ID     uuid.UUID `json:"id"`
	Plate  *string   `json:"placa"`
	Brand  string    `json:"marca"`
	Model  string    `json:"modelo"`
	Type   string    `json:"tipoVehiculo"`
	Status string    `json:"estado"`
	Active *bool     `json:"activo"`
}

func (d *vehicleDTO) toDomain() domain.Vehicle {
	v := domain.Vehicle{
		ID:     d.ID,
		Brand:  d.Brand,
		Model:  d.Model,
		Type:   d.Type,
		Status: d.Status,
		Active: d.Active == nil || *d.Active,
	}
	if d.Plate != nil && strings.TrimSpace(*d.Plate) != "" {
		plate := domain.NormalizePlate(*d.Plate)
		v.Plate = &plate
	}
	return v
}
