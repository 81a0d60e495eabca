package ports

import "github.com/grandvia/hotel-system/internal/core/domain"

// AuditSink accepts security events fire-and-forget. Record never returns an
// error and never blocks the caller: implementations log and drop on failure.
type AuditSink interface {
	Record(event *domain.AuditEvent)
}
