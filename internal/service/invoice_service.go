package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/port"
	"rentdesk/internal/validator"
)

// InvoiceService issues and voids invoices for finalized contracts.
type InvoiceService interface {
	Generate(ctx context.Context, contractID uuid.UUID, invoiceType domain.InvoiceType) (*domain.Invoice, error)
	Void(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetByContract(ctx context.Context, contractID uuid.UUID) (*domain.Invoice, error)
	InvoicesInRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error)
}

type invoiceService struct {
	repo      port.InvoiceRepository
	contracts port.ContractSource
	log       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(repo port.InvoiceRepository, contracts port.ContractSource, log *zap.Logger) InvoiceService {
	return &invoiceService{repo: repo, contracts: contracts, log: logger.OrNop(log)}
}

func (s *invoiceService) Generate(ctx context.Context, contractID uuid.UUID, invoiceType domain.InvoiceType) (*domain.Invoice, error) {
	invoiceType = domain.InvoiceType(strings.ToUpper(strings.TrimSpace(string(invoiceType))))
	if !invoiceType.Valid() {
		return nil, domain.NewValidationError(domain.CodeInvalidInput, "invoice type must be FACTURA or BOLETA")
	}
	if contractID == uuid.Nil {
		return nil, domain.ErrContractNotFound
	}

	contract, err := s.contracts.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !contract.Finalized() {
		return nil, domain.ErrContractNotFinalized
	}

	existing, err := s.repo.GetByContractID(ctx, contractID)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrDuplicateInvoice
	case err != nil && !errors.Is(err, domain.ErrInvoiceNotFound):
		return nil, fmt.Errorf("checking existing invoice: %w", err)
	}

	subtotal := contract.TotalAmount.Round(domain.MoneyPlaces)
	tax, total := domain.InvoiceAmounts(subtotal)
	inv := &domain.Invoice{
		ID:         uuid.New(),
		ContractID: &contractID,
		IssuedAt:   time.Now().UTC(),
		Type:       invoiceType,
		Series:     domain.SeriesFor(invoiceType),
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		Status:     domain.InvoiceStatusGenerated,
	}
	if err := s.repo.CreateNext(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrDuplicateInvoice) {
			return nil, err
		}
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	s.log.Info("invoice generated",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number()),
		zap.String("contract_id", contractID.String()),
	)
	return inv, nil
}

// Void marks the invoice ANULADO. Voiding twice re-sets the same status.
func (s *invoiceService) Void(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	if err := s.repo.UpdateStatus(ctx, id, domain.InvoiceStatusVoided); err != nil {
		return nil, err
	}
	s.log.Info("invoice voided", zap.String("invoice_id", id.String()))
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) GetByContract(ctx context.Context, contractID uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByContractID(ctx, contractID)
}

// InvoicesInRange lists invoices issued on the calendar days start..end.
func (s *invoiceService) InvoicesInRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.NewValidationError(domain.CodeMissingDate, "start and end dates are required")
	}
	from, to := validator.CivilDate(start), validator.CivilDate(end)
	if to.Before(from) {
		return nil, domain.NewValidationError(domain.CodeInvertedRange, "end date cannot be before start date")
	}
	return s.repo.ListByIssuedRange(ctx, from, to.AddDate(0, 0, 1))
}
