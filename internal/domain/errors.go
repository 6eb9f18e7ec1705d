package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrValidation           = errors.New("validation failed")
	ErrContractNotFound     = errors.New("contract not found")
	ErrContractNotFinalized = errors.New("invoices can only be issued for finalized contracts")
	ErrDuplicateInvoice     = errors.New("an invoice already exists for this contract")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrReportNotFound       = errors.New("generated report not found")
	ErrRemote               = errors.New("upstream service returned an error")
	ErrRemoteUnavailable    = errors.New("upstream service unavailable")
	ErrReportGeneration     = errors.New("report generation failed")
	ErrArchiveDisabled      = errors.New("report archive is not configured")
)

// Validation error codes.
const (
	CodeMissingDate   = "MISSING_DATE"
	CodeInvertedRange = "INVERTED_RANGE"
	CodeFutureStart   = "FUTURE_START"
	CodeRangeTooWide  = "RANGE_TOO_WIDE"
	CodeRangeTooShort = "RANGE_TOO_SHORT"
	CodeInvalidYear   = "INVALID_YEAR"
	CodeInvalidInput  = "INVALID_REQUEST"
)

// ValidationError describes a request the caller must fix.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError with the given code.
func NewValidationError(code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// RemoteError is returned by the upstream gateways. Status is 0 when the
// service could not be reached at all.
type RemoteError struct {
	Service string
	Status  int
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s responded %d: %v", e.Service, e.Status, e.Err)
	}
	return fmt.Sprintf("%s responded %d", e.Service, e.Status)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is matches ErrRemoteUnavailable for connection failures and ErrRemote otherwise.
func (e *RemoteError) Is(target error) bool {
	if e.Status == 0 {
		return target == ErrRemoteUnavailable
	}
	return target == ErrRemote
}

// Unavailable reports whether the upstream could not be reached.
func (e *RemoteError) Unavailable() bool {
	return e.Status == 0
}

// ReportGenerationError wraps an unexpected failure while aggregating a report.
type ReportGenerationError struct {
	Report ReportType
	Err    error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("generating %s report: %v", e.Report, e.Err)
}

func (e *ReportGenerationError) Unwrap() error {
	return e.Err
}

func (e *ReportGenerationError) Is(target error) bool {
	return target == ErrReportGeneration
}
