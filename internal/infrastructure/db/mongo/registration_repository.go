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
	"github.com/sportsclub/portal/internal/core/ports"
)

const collectionRegistrations = "registrations"

// RegistrationRepository implements ports.RegistrationRepository using MongoDB.
// Duplicate submissions are rejected by the unique {user_id, sport_id} index.
type RegistrationRepository struct {
	col *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{col: db.Collection(collectionRegistrations)}
}

type registrationDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        primitive.ObjectID `bson:"user_id"`
	SportID       primitive.ObjectID `bson:"sport_id"`
	Sport         string             `bson:"sport"`
	FullName      string             `bson:"full_name"`
	Year          string             `bson:"year"`
	Branch        string             `bson:"branch"`
	Age           int                `bson:"age"`
	Address       string             `bson:"address"`
	ContactNumber string             `bson:"contact_number,omitempty"`
	Email         string             `bson:"email"`
	ProfilePic    string             `bson:"profile_pic,omitempty"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toRegistrationDocument(r *domain.Registration) (registrationDocument, error) {
	userID, ok := parseID(r.UserID)
	if !ok {
		return registrationDocument{}, domain.ErrUserNotFound
	}
	sportID, ok := parseID(r.SportID)
	if !ok {
		return registrationDocument{}, domain.ErrSportNotFound
	}
	return registrationDocument{
		UserID:        userID,
		SportID:       sportID,
		Sport:         r.Sport,
		FullName:      r.FullName,
		Year:          r.Year,
		Branch:        r.Branch,
		Age:           r.Age,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		ProfilePic:    r.ProfilePic,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

func (d registrationDocument) toDomain() *domain.Registration {
	return &domain.Registration{
		ID:            hexOrEmpty(d.ID),
		UserID:        hexOrEmpty(d.UserID),
		SportID:       hexOrEmpty(d.SportID),
		Sport:         d.Sport,
		FullName:      d.FullName,
		Year:          d.Year,
		Branch:        d.Branch,
		Age:           d.Age,
		Address:       d.Address,
		ContactNumber: d.ContactNumber,
		Email:         d.Email,
		ProfilePic:    d.ProfilePic,
		Status:        domain.RegistrationStatus(d.Status),
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// Create inserts a new registration. The uniqueness check is the insert itself.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	doc, err := toRegistrationDocument(reg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc registrationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return doc.toDomain(), nil
}

// registrationFilter translates f into a query. ok is false when an id in f
// is malformed and therefore nothing can match.
func registrationFilter(f ports.ListRegistrationsFilter) (filter bson.M, ok bool) {
	filter = bson.M{}
	if f.UserID != "" {
		oid, valid := parseID(f.UserID)
		if !valid {
			return nil, false
		}
		filter["user_id"] = oid
	}
	if f.SportID != "" {
		oid, valid := parseID(f.SportID)
		if !valid {
			return nil, false
		}
		filter["sport_id"] = oid
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return filter, true
}

// List returns one page of registrations, newest first, and the total match count.
func (r *RegistrationRepository) List(ctx context.Context, f ports.ListRegistrationsFilter) ([]*domain.Registration, int64, error) {
	filter, ok := registrationFilter(f)
	if !ok {
		return []*domain.Registration{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * f.Limit)).SetLimit(int64(f.Limit))
	}

	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *RegistrationRepository) ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, bson.M{"status": string(status)}, opts)
}

func (r *RegistrationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Registration, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []registrationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}

	out := make([]*domain.Registration, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// UpdateStatus sets the status and returns the updated registration.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus, at time.Time) (*domain.Registration, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc registrationDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("update registration status: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique {user_id, sport_id} index and the list indexes.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "sport_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_sport"),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "sport_id", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("registrations indexes: %w", err)
	}
	return nil
}
