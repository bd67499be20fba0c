package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportsclub/portal/internal/core/domain"
)

const collectionRegistrationHistory = "registration_history"

// RegistrationHistoryRepository persists status changes to an audit collection.
type RegistrationHistoryRepository struct {
	col *mongo.Collection
}

func NewRegistrationHistoryRepository(db *mongo.Database) *RegistrationHistoryRepository {
	return &RegistrationHistoryRepository{col: db.Collection(collectionRegistrationHistory)}
}

// Insert appends one status change.
func (r *RegistrationHistoryRepository) Insert(ctx context.Context, entry *domain.RegistrationHistoryEntry) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := bson.M{
		"registration_id": entry.RegistrationID,
		"from":            string(entry.From),
		"to":              string(entry.To),
		"changed_at":      entry.ChangedAt.UTC(),
		"recorded_at":     time.Now().UTC(),
	}
	if oid, ok := parseID(entry.RegistrationID); ok {
		doc["registration_id"] = oid
	}
	if entry.ActorID != "" {
		doc["actor_id"] = entry.ActorID
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert registration history: %w", err)
	}
	return nil
}

func (r *RegistrationHistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "registration_id", Value: 1}, {Key: "changed_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("registration history indexes: %w", err)
	}
	return nil
}
