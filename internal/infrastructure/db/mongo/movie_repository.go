package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(collectionMovies)}
}

type movieDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Seq      int64              `bson:"id"`
	Title    string             `bson:"title"`
	Director string             `bson:"director"`
	Year     int                `bson:"year"`
}

func (d *movieDoc) toDomain() *domain.Movie {
	return &domain.Movie{ID: d.ID.Hex(), Seq: d.Seq, Title: d.Title, Director: d.Director, Year: d.Year}
}

func movieQuery(f domain.MovieFilter) bson.M {
	q := bson.M{}
	if f.Title != "" {
		q["title"] = containsFold(f.Title)
	}
	if f.Director != "" {
		q["director"] = containsFold(f.Director)
	}
	if f.Year != 0 {
		q["year"] = f.Year
	}
	return q
}

func (r *MovieRepository) List(ctx context.Context, f domain.MovieFilter) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, movieQuery(f), options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	var docs []movieDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}

	out := make([]*domain.Movie, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MovieRepository) Create(ctx context.Context, f domain.MovieFields) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, err := nextSeq(ctx, r.col)
	if err != nil {
		return nil, err
	}
	doc := movieDoc{ID: primitive.NewObjectID(), Seq: seq, Title: f.Title, Director: f.Director, Year: f.Year}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MovieRepository) Replace(ctx context.Context, id string, f domain.MovieFields) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Title, doc.Director, doc.Year = f.Title, f.Director, f.Year

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("replace movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMovieNotFound
	}
	return doc.toDomain(), nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": doc.ID})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

// Reset drops the movies collection.
func (r *MovieRepository) Reset(ctx context.Context) error {
	return r.col.Drop(ctx)
}

func (r *MovieRepository) find(ctx context.Context, id string) (*movieDoc, error) {
	var doc movieDoc
	if err := findByAnyID(ctx, r.col, id, &doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return &doc, nil
}
