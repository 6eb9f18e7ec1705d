package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentdesk/internal/domain"
)

const contractCodeUnknown = "N/A"

func (s *reportService) Payments(ctx context.Context, start, end time.Time) ([]domain.PaymentRow, error) {
	rows, found, err := s.buildPayments(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if found {
		s.record(paymentsRun(start, end, len(rows)), domain.FormatJSON, nil)
	}
	return rows, nil
}

func (s *reportService) ExportPayments(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error) {
	rows, _, err := s.buildPayments(ctx, start, end)
	if err != nil {
		return nil, err
	}
	run := paymentsRun(start, end, len(rows))
	return s.export(ctx, run, format, s.paymentsTable(rows, start, end))
}

func paymentsRun(start, end time.Time, count int) reportRun {
	return reportRun{
		reportType: domain.ReportPayments,
		baseName:   rangeBaseName("reporte-pagos", start, end),
		params:     rangeParams(start, end, "Registros", count),
	}
}

// buildPayments joins the invoices issued in the range with their contracts
// and customers. Rows keep the order the invoices were returned in. found is
// false when the range held no invoices at all.
func (s *reportService) buildPayments(ctx context.Context, start, end time.Time) (rows []domain.PaymentRow, found bool, err error) {
	if err := s.validator.Validate(start, end); err != nil {
		return nil, false, err
	}

	invoices, err := s.invoices.InvoicesInRange(ctx, start, end)
	if err != nil {
		return nil, false, s.fail(domain.ReportPayments, err)
	}
	if len(invoices) == 0 {
		s.log.Info("no invoices in range",
			zap.String("start", start.Format(isoDate)),
			zap.String("end", end.Format(isoDate)),
		)
		return []domain.PaymentRow{}, false, nil
	}

	contracts, err := s.contracts.ContractsInRange(ctx, start, end)
	if err != nil {
		return nil, false, s.fail(domain.ReportPayments, err)
	}

	contractsByID := make(map[uuid.UUID]*domain.Contract, len(contracts))
	var customerIDs []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for i := range contracts {
		c := &contracts[i]
		contractsByID[c.ID] = c
		if id := c.ReferencedCustomerID(); id != nil && !seen[*id] {
			seen[*id] = true
			customerIDs = append(customerIDs, *id)
		}
	}

	customersByID := make(map[uuid.UUID]*domain.Customer, len(customerIDs))
	if len(customerIDs) > 0 {
		customers, err := s.customers.CustomersByIDs(ctx, customerIDs)
		if err != nil {
			return nil, false, s.fail(domain.ReportPayments, err)
		}
		for i := range customers {
			customersByID[customers[i].ID] = &customers[i]
		}
	}

	rows = make([]domain.PaymentRow, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if inv.ContractID == nil {
			continue
		}

		contract := contractsByID[*inv.ContractID]
		code := contractCodeUnknown
		if contract != nil {
			code = contract.Code
		}
		customer := resolveCustomer(contract, customersByID)

		rows = append(rows, domain.PaymentRow{
			InvoiceNumber: inv.Number(),
			IssuedAt:      inv.IssuedAt,
			InvoiceType:   inv.Type,
			CustomerName:  customer.DisplayName(),
			CustomerDoc:   customer.DocumentString(),
			CustomerKind:  customer.Kind,
			Subtotal:      inv.Subtotal,
			Tax:           inv.Tax,
			Total:         inv.Total,
			InvoiceStatus: inv.Status,
			ContractCode:  code,
		})
	}

	s.log.Info("payments report built", zap.Int("rows", len(rows)))
	return rows, true, nil
}

// resolveCustomer prefers the fetched customer, then the snapshot embedded in
// the contract, then the placeholder.
func resolveCustomer(contract *domain.Contract, byID map[uuid.UUID]*domain.Customer) domain.Customer {
	if contract == nil {
		return domain.PlaceholderCustomer()
	}
	if id := contract.ReferencedCustomerID(); id != nil {
		if c, ok := byID[*id]; ok {
			return *c
		}
	}
	if contract.Customer != nil {
		return *contract.Customer
	}
	return domain.PlaceholderCustomer()
}
