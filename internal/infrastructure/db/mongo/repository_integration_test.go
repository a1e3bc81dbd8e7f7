//go:build integration

// Run with: MONGODB_URI=mongodb://localhost:27017 go test -tags integration ./internal/infrastructure/db/mongo/
package mongo

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

func newTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "catalog_test_" + uuid.NewString()[:8]})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestMovieRepository_Lifecycle(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, domain.MovieFields{Title: "Dune", Director: "Denis Villeneuve", Year: 2021})
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.MovieFields{Title: "Parasite", Director: "Bong Joon-ho", Year: 2019})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Seq+1, second.Seq)

	for _, id := range []string{first.ID, strconv.FormatInt(first.Seq, 10)} {
		got, err := repo.FindByID(ctx, id)
		require.NoError(t, err, id)
		assert.Equal(t, first, got)
	}

	updated, err := repo.Replace(ctx, first.ID, domain.MovieFields{Title: "Dune: Part One", Director: "Denis Villeneuve", Year: 2021})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune: Part One", got.Title)

	list, err := repo.List(ctx, domain.MovieFilter{Director: "bong"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), domain.ErrMovieNotFound)
	_, err = repo.FindByID(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestEventRepository_Lifecycle(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	ctx := context.Background()

	later, err := repo.Create(ctx, domain.EventFields{Title: "Exam", Date: time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC), Location: "Hall", Type: domain.EventExam})
	require.NoError(t, err)
	earlier, err := repo.Create(ctx, domain.EventFields{Title: "Kickoff", Date: time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC), Location: "Room 1", Type: domain.EventMeeting})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, earlier.ID)
	require.NoError(t, err)
	assert.Equal(t, earlier, got)

	list, err := repo.List(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, earlier.ID, list[0].ID)

	list, err = repo.List(ctx, domain.EventFilter{Day: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, later.ID, list[0].ID)

	_, err = repo.Replace(ctx, later.ID, domain.EventFields{Title: "Final exam", Date: later.Date, Location: "Hall", Type: domain.EventExam})
	require.NoError(t, err)
	got, err = repo.FindByID(ctx, strconv.FormatInt(later.Seq, 10))
	require.NoError(t, err)
	assert.Equal(t, "Final exam", got.Title)
	assert.True(t, got.Date.Equal(later.Date))

	require.NoError(t, repo.Delete(ctx, later.ID))
	_, err = repo.FindByID(ctx, later.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u, err := repo.Create(ctx, &domain.User{Username: "admin", PasswordHash: "h", Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Username: "admin", PasswordHash: "h2", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	got, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}
