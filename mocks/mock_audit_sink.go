package mocks

import (
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockAuditSink is a mock implementation of port.AuditSink.
type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Record(rep domain.GeneratedReport) {
	m.Called(rep)
}
