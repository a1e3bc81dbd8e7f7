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

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type eventDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Seq       int64              `bson:"id"`
	Title     string             `bson:"title"`
	Date      time.Time          `bson:"date"`
	Location  string             `bson:"location"`
	Type      string             `bson:"type"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:        d.ID.Hex(),
		Seq:       d.Seq,
		Title:     d.Title,
		Date:      d.Date.UTC(),
		Location:  d.Location,
		Type:      domain.EventType(d.Type),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func eventQuery(f domain.EventFilter) bson.M {
	q := bson.M{}
	if f.Type != "" {
		q["type"] = string(f.Type)
	}
	if f.Title != "" {
		q["title"] = containsFold(f.Title)
	}
	if !f.Day.IsZero() {
		from, to := f.DayRange()
		q["date"] = bson.M{"$gte": from, "$lt": to}
	}
	return q
}

func (r *EventRepository) List(ctx context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "id", Value: 1}})
	cur, err := r.col.Find(ctx, eventQuery(f), opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var docs []eventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	out := make([]*domain.Event, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) Create(ctx context.Context, f domain.EventFields) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, err := nextSeq(ctx, r.col)
	if err != nil {
		return nil, err
	}
	now := bsonTime(time.Now())
	doc := eventDoc{
		ID:        primitive.NewObjectID(),
		Seq:       seq,
		Title:     f.Title,
		Date:      bsonTime(f.Date),
		Location:  f.Location,
		Type:      string(f.Type),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) Replace(ctx context.Context, id string, f domain.EventFields) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Title, doc.Date, doc.Location, doc.Type = f.Title, bsonTime(f.Date), f.Location, string(f.Type)
	doc.UpdatedAt = bsonTime(time.Now())

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("replace event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEventNotFound
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": doc.ID})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Reset drops the events collection.
func (r *EventRepository) Reset(ctx context.Context) error {
	return r.col.Drop(ctx)
}

func (r *EventRepository) find(ctx context.Context, id string) (*eventDoc, error) {
	var doc eventDoc
	if err := findByAnyID(ctx, r.col, id, &doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &doc, nil
}
