package ports

import (
	"context"
	"time"
)

// Acciones registradas en la bitácora.
const (
	AuditOrderCreated       = "order.created"
	AuditOrderStatusChanged = "order.status_changed"
	AuditProductDeleted     = "product.deleted"
)

// AuditEntry evento de negocio registrado en la bitácora.
type AuditEntry struct {
	Action     string
	ActorID    string
	EntityType string
	EntityID   string
	Details    map[string]any
	CreatedAt  time.Time
}

// AuditLogger puerto de salida de la bitácora de auditoría.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// NopAuditLogger descarta los eventos (auditoría deshabilitada).
type NopAuditLogger struct{}

func (NopAuditLogger) Record(context.Context, AuditEntry) error { return nil }
