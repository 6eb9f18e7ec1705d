package validator_test

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/validator"
)

type exportRequest struct {
	Format string `json:"format" binding:"omitempty,report_format"`
	Type   string `json:"type" binding:"required,invoice_type"`
}

func TestSetupBinding_CustomTags(t *testing.T) {
	require.NoError(t, validator.SetupBinding())

	assert.NoError(t, binding.Validator.ValidateStruct(&exportRequest{Format: "csv", Type: "boleta"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&exportRequest{Type: "FACTURA"}))

	err := binding.Validator.ValidateStruct(&exportRequest{Format: "pdf", Type: "NOTA"})
	require.Error(t, err)
	msg := validator.BindingMessage(err)
	assert.Contains(t, msg, "format: must be EXCEL or CSV")
	assert.Contains(t, msg, "type: must be FACTURA or BOLETA")
}

func TestBindingMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "invalid request body", validator.BindingMessage(errors.New("unexpected EOF")))
}
