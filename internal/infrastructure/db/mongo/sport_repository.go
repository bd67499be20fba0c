package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportsclub/portal/internal/core/domain"
)

const collectionSports = "sports"

// SportRepository implements ports.SportRepository using MongoDB. Names are
// unique regardless of case.
type SportRepository struct {
	col *mongo.Collection
}

func NewSportRepository(db *mongo.Database) *SportRepository {
	return &SportRepository{col: db.Collection(collectionSports)}
}

type sportDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	MaxPlayers int                `bson:"max_players"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d sportDocument) toDomain() *domain.Sport {
	return &domain.Sport{
		ID:         hexOrEmpty(d.ID),
		Name:       d.Name,
		MaxPlayers: d.MaxPlayers,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

func (r *SportRepository) Create(ctx context.Context, s *domain.Sport) (*domain.Sport, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := sportDocument{Name: s.Name, MaxPlayers: s.MaxPlayers, CreatedAt: s.CreatedAt}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSportExists
		}
		return nil, fmt.Errorf("insert sport: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *SportRepository) FindByID(ctx context.Context, id string) (*domain.Sport, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrSportNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne())
}

// FindByName matches case-insensitively using the same collation as the unique index.
func (r *SportRepository) FindByName(ctx context.Context, name string) (*domain.Sport, error) {
	return r.findOne(ctx, bson.M{"name": name}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *SportRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Sport, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc sportDocument
	if err := r.col.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSportNotFound
		}
		return nil, fmt.Errorf("find sport: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns all sports ordered by name.
func (r *SportRepository) List(ctx context.Context) ([]*domain.Sport, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetCollation(caseInsensitive)
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}
	defer cur.Close(ctx)

	var docs []sportDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sports: %w", err)
	}

	sports := make([]*domain.Sport, 0, len(docs))
	for _, d := range docs {
		sports = append(sports, d.toDomain())
	}
	return sports, nil
}

func (r *SportRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return domain.ErrSportNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete sport: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSportNotFound
	}
	return nil
}

// EnsureIndexes creates the case-insensitive unique name index.
func (r *SportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
	})
	if err != nil {
		return fmt.Errorf("sports indexes: %w", err)
	}
	return nil
}
