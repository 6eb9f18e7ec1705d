package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"rentdesk/internal/domain"
)

// SetupBinding registers the custom tags used by request DTOs on gin's
// validator engine and reports field names by their JSON tag.
func SetupBinding() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("report_format", validReportFormat); err != nil {
		return fmt.Errorf("registering report_format: %w", err)
	}
	if err := v.RegisterValidation("invoice_type", validInvoiceType); err != nil {
		return fmt.Errorf("registering invoice_type: %w", err)
	}
	return nil
}

func validReportFormat(fl validator.FieldLevel) bool {
	_, ok := domain.ParseReportFormat(fl.Field().String())
	return ok
}

func validInvoiceType(fl validator.FieldLevel) bool {
	return domain.InvoiceType(strings.ToUpper(strings.TrimSpace(fl.Field().String()))).Valid()
}

// BindingMessage turns a binding error into a single human readable line.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Field()+": "+fieldMessage(e))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid UUID"
	case "report_format":
		return "must be EXCEL or CSV"
	case "invoice_type":
		return "must be FACTURA or BOLETA"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	default:
		return "is invalid"
	}
}
