package port

import "rentdesk/internal/domain"

// AuditSink accepts generated-report records. Record never blocks on
// persistence and never reports failure to the caller.
type AuditSink interface {
	Record(rep domain.GeneratedReport)
}
