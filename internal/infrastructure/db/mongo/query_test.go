package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

func TestIDFilters(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"object id", oid.Hex(), 1},
		{"numeric seq", "42", 1},
		{"zero", "0", 0},
		{"garbage", "abc", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idFilters(tt.id); len(got) != tt.want {
				t.Fatalf("idFilters(%q) = %v, want %d filters", tt.id, got, tt.want)
			}
		})
	}

	f := idFilters(oid.Hex())
	if f[0]["_id"] != oid {
		t.Errorf("expected native lookup first, got %v", f[0])
	}
	if n := idFilters("42")[0]["id"]; n != int64(42) {
		t.Errorf("expected seq lookup, got %v", n)
	}
}

func TestMovieQuery(t *testing.T) {
	q := movieQuery(domain.MovieFilter{Title: "the (matrix)", Year: 1999})

	re, ok := q["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex title filter, got %T", q["title"])
	}
	if re.Pattern != `the \(matrix\)` || re.Options != "i" {
		t.Errorf("unexpected regex %+v", re)
	}
	if q["year"] != 1999 {
		t.Errorf("expected exact year, got %v", q["year"])
	}
	if _, ok := q["director"]; ok {
		t.Errorf("director filter must be omitted when empty")
	}
}

func TestEventQuery_DayRange(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	q := eventQuery(domain.EventFilter{Type: domain.EventMeeting, Day: day})

	if q["type"] != "meeting" {
		t.Errorf("unexpected type filter %v", q["type"])
	}
	rng, ok := q["date"].(bson.M)
	if !ok {
		t.Fatalf("expected date range, got %T", q["date"])
	}
	if !rng["$gte"].(time.Time).Equal(day) || !rng["$lt"].(time.Time).Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("unexpected range %v", rng)
	}
	if len(eventQuery(domain.EventFilter{})) != 0 {
		t.Errorf("empty filter must match everything")
	}
}

func TestDocMapping(t *testing.T) {
	oid := primitive.NewObjectID()
	m := (&movieDoc{ID: oid, Seq: 3, Title: "Parasite", Director: "Bong Joon-ho", Year: 2019}).toDomain()
	if m.ID != oid.Hex() || m.Seq != 3 || m.Year != 2019 {
		t.Errorf("unexpected movie %+v", m)
	}

	u := (&userDoc{ID: oid, Username: "admin", Role: domain.RoleAdmin}).toDomain()
	if u.ID != oid.Hex() || !u.CreatedAt.IsZero() {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestBSONTime(t *testing.T) {
	in := time.Date(2025, 1, 5, 9, 0, 0, 123456789, time.FixedZone("CET", 3600))
	got := bsonTime(in)
	if !got.Equal(time.Date(2025, 1, 5, 8, 0, 0, 123000000, time.UTC)) || got.Location() != time.UTC {
		t.Fatalf("unexpected %v", got)
	}
}
