package ports

import (
	"context"
	"time"
)

// Audit actions recorded by the security trail.
const (
	AuditLoginSucceeded  = "login_succeeded"
	AuditLoginFailed     = "login_failed"
	AuditUserRegistered  = "user_registered"
	AuditAccessDenied    = "access_denied"
	AuditResourceDeleted = "resource_deleted"
)

// AuditEntry is one record in the security audit trail. Subject is the
// account email when known, otherwise empty (anonymous requests).
type AuditEntry struct {
	Subject   string
	Action    string
	Detail    string
	Timestamp time.Time
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry AuditEntry) error
}

// AuditService processes audit entries taken off the dispatcher queue.
type AuditService interface {
	Process(ctx context.Context, entry AuditEntry) error
}

// AuditSink is the write side handed to request-path code. Recording is
// best-effort and must never block or fail the request.
type AuditSink interface {
	Record(entry AuditEntry)
}
