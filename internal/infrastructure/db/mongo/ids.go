package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// idFilters returns the lookups to try for an external id, native ObjectID
// first and numeric seq second. An id matching neither form yields none.
func idFilters(id string) []bson.M {
	id = strings.TrimSpace(id)
	var filters []bson.M
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		filters = append(filters, bson.M{"_id": oid})
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > 0 {
		filters = append(filters, bson.M{"id": n})
	}
	return filters
}

// findByAnyID decodes the first document matched by idFilters into out.
// It returns mongo.ErrNoDocuments when nothing matches.
func findByAnyID(ctx context.Context, col *mongo.Collection, id string, out interface{}) error {
	for _, f := range idFilters(id) {
		err := col.FindOne(ctx, f).Decode(out)
		if err == nil {
			return nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
	}
	return mongo.ErrNoDocuments
}

// nextSeq returns max(id)+1 for the collection, 1 when it is empty.
func nextSeq(ctx context.Context, col *mongo.Collection) (int64, error) {
	var last struct {
		Seq int64 `bson:"id"`
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(bson.M{"id": 1})
	err := col.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return last.Seq + 1, nil
}

// containsFold matches a case-insensitive substring, the needle taken literally.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// bsonTime trims t to the millisecond precision BSON dates keep.
func bsonTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
