// Package audit guarda la bitácora de eventos de negocio en MongoDB.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/pkg/config"
)

var _ ports.AuditLogger = (*MongoAuditLogger)(nil)

const serviceName = "greenthread-api"

// auditDocument documento almacenado en la colección de auditoría.
type auditDocument struct {
	Service    string    `bson:"service"`
	Action     string    `bson:"action"`
	ActorID    string    `bson:"actor_id"`
	EntityType string    `bson:"entity_type"`
	EntityID   string    `bson:"entity_id"`
	Data       bson.M    `bson:"data,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
}

// MongoAuditLogger implementa AuditLogger insertando un documento por evento.
type MongoAuditLogger struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoAuditLogger conecta, verifica con ping y crea el índice por entidad.
func NewMongoAuditLogger(ctx context.Context, cfg config.MongoConfig) (*MongoAuditLogger, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	coll := client.Database(cfg.Database).Collection(cfg.AuditCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity_type", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo índice de auditoría: %w", err)
	}
	return &MongoAuditLogger{client: client, collection: coll}, nil
}

// Record inserta la entrada.
func (l *MongoAuditLogger) Record(ctx context.Context, entry ports.AuditEntry) error {
	if _, err := l.collection.InsertOne(ctx, toDocument(entry)); err != nil {
		return fmt.Errorf("mongo insert auditoría: %w", err)
	}
	return nil
}

// ListByEntity últimas entradas de una entidad, de la más reciente a la más antigua.
func (l *MongoAuditLogger) ListByEntity(ctx context.Context, entityType, entityID string, limit int64) ([]ports.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := l.collection.Find(ctx, bson.M{"entity_type": entityType, "entity_id": entityID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find auditoría: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auditDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode auditoría: %w", err)
	}
	out := make([]ports.AuditEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, ports.AuditEntry{
			Action:     d.Action,
			ActorID:    d.ActorID,
			EntityType: d.EntityType,
			EntityID:   d.EntityID,
			Details:    map[string]any(d.Data),
			CreatedAt:  d.CreatedAt,
		})
	}
	return out, nil
}

// Ping verifica la conexión (health check).
func (l *MongoAuditLogger) Ping(ctx context.Context) error {
	return l.client.Ping(ctx, nil)
}

// Close cierra el cliente.
func (l *MongoAuditLogger) Close(ctx context.Context) error {
	return l.client.Disconnect(ctx)
}

func toDocument(e ports.AuditEntry) auditDocument {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	var data bson.M
	if len(e.Details) > 0 {
		data = bson.M(e.Details)
	}
	return auditDocument{
		Service:    serviceName,
		Action:     e.Action,
		ActorID:    e.ActorID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Data:       data,
		CreatedAt:  created,
	}
}
