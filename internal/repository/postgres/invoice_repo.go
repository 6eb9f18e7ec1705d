package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// nextCorrelativeQuery bumps the per-series counter, seeding it from the
// highest correlative already issued. The row lock taken by the upsert
// serializes concurrent allocations within a series until commit.
const nextCorrelativeQuery = `INSERT INTO invoice_series (series, last_number)
	VALUES ($1, COALESCE((SELECT MAX(correlative::BIGINT) FROM invoices WHERE series = $1), 0) + 1)
	ON CONFLICT (series) DO UPDATE SET last_number = invoice_series.last_number + 1
	RETURNING last_number`

const invoiceColumns = `id, contract_id, issued_at, invoice_type, series, correlative,
	subtotal, tax, total, status`

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) CreateNext(ctx context.Context, inv *domain.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now().UTC()
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var next int64
		if err := tx.GetContext(ctx, &next, nextCorrelativeQuery, inv.Series); err != nil {
			return fmt.Errorf("allocating correlative: %w", err)
		}
		inv.Correlative = domain.FormatCorrelative(next)

		_, err := tx.ExecContext(ctx,
			`INSERT INTO invoices (`+invoiceColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			inv.ID, inv.ContractID, inv.IssuedAt, inv.Type, inv.Series, inv.Correlative,
			inv.Subtotal, inv.Tax, inv.Total, inv.Status)
		return err
	})
	if err != nil {
		inv.Correlative = ""
		if isUniqueViolation(err, "uq_invoices_contract") {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("invoiceRepo.CreateNext: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) GetByContractID(ctx context.Context, contractID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		`SELECT `+invoiceColumns+` FROM invoices WHERE contract_id = $1`, contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByContractID: %w", err)
	}
	return &inv, nil
}

// ListByIssuedRange returns invoices issued in [from, to), oldest first.
func (r *invoiceRepo) ListByIssuedRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT `+invoiceColumns+` FROM invoices
		 WHERE issued_at >= $1 AND issued_at < $2
		 ORDER BY issued_at, series, correlative`, from, to)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByIssuedRange: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// NewInvoiceSource serves InvoicesInRange from the local invoices table.
func NewInvoiceSource(db *sqlx.DB) port.InvoiceSource {
	return &invoiceRepo{db: db}
}

// InvoicesInRange returns invoices issued on the calendar days start..end.
func (r *invoiceRepo) InvoicesInRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)
	return r.ListByIssuedRange(ctx, from, to)
}
