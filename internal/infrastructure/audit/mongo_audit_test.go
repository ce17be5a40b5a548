package audit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/pkg/config"
)

func TestToDocument_CompletaFechaYServicio(t *testing.T) {
	doc := toDocument(ports.AuditEntry{
		Action: ports.AuditOrderCreated, ActorID: "b1", EntityType: "order", EntityID: "o1",
		Details: map[string]any{"total_amount": "100"},
	})
	assert.Equal(t, serviceName, doc.Service)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Equal(t, "100", doc.Data["total_amount"])
}

func TestToDocument_SinDetalles(t *testing.T) {
	ts := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	doc := toDocument(ports.AuditEntry{Action: ports.AuditProductDeleted, CreatedAt: ts})
	assert.Nil(t, doc.Data)
	assert.Equal(t, ts, doc.CreatedAt)
}

// Requiere TEST_MONGO_URI.
func TestMongoAuditLogger_RegistrarYListar(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI no definido")
	}
	ctx := context.Background()
	l, err := NewMongoAuditLogger(ctx, config.MongoConfig{URI: uri, Database: "greenthread_test", AuditCollection: "audit_logs"})
	require.NoError(t, err)
	defer l.Close(ctx)

	orderID := uuid.NewString()
	require.NoError(t, l.Record(ctx, ports.AuditEntry{
		Action: ports.AuditOrderStatusChanged, ActorID: "s1", EntityType: "order", EntityID: orderID,
		Details: map[string]any{"from": "Pending", "to": "Shipped"},
	}))

	list, err := l.ListByEntity(ctx, "order", orderID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Shipped", list[0].Details["to"])
}
