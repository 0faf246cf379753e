package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sparkdate/spark-backend/internal/db"
	"github.com/sparkdate/spark-backend/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db.Models...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestSwipeUpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	// insert like
	require.NoError(t, repo.Upsert(ctx, 1, 2, db.DirectionLike))

	// overwrite with pass
	require.NoError(t, repo.Upsert(ctx, 1, 2, db.DirectionPass))

	var swipes []db.Swipe
	require.NoError(t, dbase.Find(&swipes).Error)
	require.Len(t, swipes, 1)
	assert.Equal(t, db.DirectionPass, swipes[0].Direction)
}

func TestHasLiked(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	require.NoError(t, repo.Upsert(ctx, 1, 2, db.DirectionLike))
	require.NoError(t, repo.Upsert(ctx, 2, 3, db.DirectionPass))

	liked, err := repo.HasLiked(ctx, 1, 2)
	assert.NoError(t, err)
	assert.True(t, liked)

	// a pass is not a like
	liked, err = repo.HasLiked(ctx, 2, 3)
	assert.NoError(t, err)
	assert.False(t, liked)

	// never swiped
	liked, err = repo.HasLiked(ctx, 3, 1)
	assert.NoError(t, err)
	assert.False(t, liked)
}

func TestSwipedTargetIDs(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	require.NoError(t, repo.Upsert(ctx, 1, 2, db.DirectionLike))
	require.NoError(t, repo.Upsert(ctx, 1, 3, db.DirectionPass))
	require.NoError(t, repo.Upsert(ctx, 2, 1, db.DirectionLike))

	ids, err := repo.SwipedTargetIDs(ctx, 1)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3}, ids)
}

func TestCountLikers(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	require.NoError(t, repo.Upsert(ctx, 1, 99, db.DirectionLike))
	require.NoError(t, repo.Upsert(ctx, 2, 99, db.DirectionLike))
	require.NoError(t, repo.Upsert(ctx, 3, 99, db.DirectionPass))

	count, err := repo.CountLikers(ctx, 99)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// overwriting a like with a pass lowers the count
	require.NoError(t, repo.Upsert(ctx, 2, 99, db.DirectionPass))
	count, err = repo.CountLikers(ctx, 99)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
