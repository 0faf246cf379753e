package swipe_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/cache"
	"github.com/sparkdate/spark-backend/internal/config"
	"github.com/sparkdate/spark-backend/internal/db"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/service/swipe"
)

// setupService spins up an in-memory SQLite DB, applies migrations, starts a
// miniredis, and wires everything into a swipe service.
//
// Each test gets its own isolated DB + Redis.
func setupService(t *testing.T) (*swipe.Service, *app.AppContext) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(db.Models...))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests

	appCtx := app.New(dbase, redisCache, logger)
	return swipe.NewSwipeService(appCtx), appCtx
}

// seedUsers inserts n users with default profiles.
func seedUsers(t *testing.T, dbase *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		user := db.User{
			ID:           uint64(i),
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("u%d@test.com", i),
			PasswordHash: "x",
		}
		require.NoError(t, dbase.Create(&user).Error)
		profile := db.Profile{
			UserID:        uint64(i),
			Age:           25,
			Gender:        "female",
			City:          "London",
			ExposureScore: 100,
			Photos:        []string{},
			BlockedUsers:  []uint64{},
		}
		require.NoError(t, dbase.Create(&profile).Error)
	}
}

// TestReciprocityCreatesExactlyOneMatch walks the canonical scenario:
// user1 likes user2 (no match yet), user2 likes back (match M), user1
// resubmits the like (still match M, no new row).
func TestReciprocityCreatesExactlyOneMatch(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedUsers(t, appCtx.DB, 2)

	res, err := svc.RecordSwipe(ctx, 1, 2, db.DirectionLike)
	require.NoError(t, err)
	assert.False(t, res.Matched)

	res, err = svc.RecordSwipe(ctx, 2, 1, db.DirectionLike)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	require.NotZero(t, res.MatchID)
	matchID := res.MatchID

	// duplicate submission returns the same match
	res, err = svc.RecordSwipe(ctx, 1, 2, db.DirectionLike)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, matchID, res.MatchID)

	var count int64
	require.NoError(t, appCtx.DB.Model(&db.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSelfSwipeRejected(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedUsers(t, appCtx.DB, 1)

	_, err := svc.RecordSwipe(ctx, 1, 1, db.DirectionLike)
	require.Error(t, err)

	apiErr := httperr.Map(err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	// never reaches the ledger
	var count int64
	require.NoError(t, appCtx.DB.Model(&db.Swipe{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestInvalidDirectionRejected(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedUsers(t, appCtx.DB, 2)

	_, err := svc.RecordSwipe(ctx, 1, 2, "MAYBE")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperr.Map(err).Status)
}

// TestPassNeverMatches checks that a PASS from user1 never creates a match
// even though user2 already liked user1, and that the silent dislike penalty
// lands on the target.
func TestPassNeverMatches(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedUsers(t, appCtx.DB, 2)

	res, err := svc.RecordSwipe(ctx, 2, 1, db.DirectionLike)
	require.NoError(t, err)
	assert.False(t, res.Matched)

	res, err = svc.RecordSwipe(ctx, 1, 2, db.DirectionPass)
	require.NoError(t, err)
	assert.False(t, res.Matched)

	var count int64
	require.NoError(t, appCtx.DB.Model(&db.Match{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var target db.Profile
	require.NoError(t, appCtx.DB.Where("user_id = ?", 2).First(&target).Error)
	assert.Equal(t, 1, target.DislikeCount)
	assert.Equal(t, 70, target.ExposureScore)
}

// TestSimultaneousReciprocalLikes fires both sides of the pair at once.
// Whatever the interleaving, exactly one match row may exist afterwards and
// the later reconciliation must report it.
func TestSimultaneousReciprocalLikes(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedUsers(t, appCtx.DB, 2)

	// one pooled connection keeps sqlite serialized under the racing goroutines
	sqlDB, err := appCtx.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	results := make(chan *swipe.Result, 2)
	errs := make(chan error, 2)

	var wg sync.WaitGroup
	for _, pair := range [][2]uint64{{1, 2}, {2, 1}} {
		wg.Add(1)
		go func(swiper, target uint64) {
			defer wg.Done()
			res, err := svc.RecordSwipe(ctx, swiper, target, db.DirectionLike)
			if err != nil {
				errs <- err
				return
			}
			results <- res
		}(pair[0], pair[1])
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent RecordSwipe failed: %v", err)
	}

	matched := 0
	for res := range results {
		if res.Matched {
			matched++
			assert.NotZero(t, res.MatchID)
		}
	}
	// the second reconciliation always sees the first upsert
	assert.GreaterOrEqual(t, matched, 1)

	var count int64
	require.NoError(t, appCtx.DB.Model(&db.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestRepeatedPassPenalizesOnce: the ledger upsert is a no-op for a repeated
// PASS, so the silent penalty must not stack.
func TestRepeatedPassPenalizesOnce(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedUsers(t, appCtx.DB, 2)

	for i := 0; i < 3; i++ {
		res, err := svc.RecordSwipe(ctx, 1, 2, db.DirectionPass)
		require.NoError(t, err)
		assert.False(t, res.Matched)
	}

	var target db.Profile
	require.NoError(t, appCtx.DB.Where("user_id = ?", 2).First(&target).Error)
	assert.Equal(t, 1, target.DislikeCount)
	assert.Equal(t, 70, target.ExposureScore)
}

// TestDirectionChangesKeepCounterConsistent walks LIKE → LIKE → PASS → LIKE
// and checks the liked-you counter and the penalty both track the effective
// direction, not the submission count.
func TestDirectionChangesKeepCounterConsistent(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedUsers(t, appCtx.DB, 2)

	_, err := svc.RecordSwipe(ctx, 1, 2, db.DirectionLike)
	require.NoError(t, err)
	count, err := svc.CountLikedYou(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// duplicate LIKE must not double-count
	_, err = svc.RecordSwipe(ctx, 1, 2, db.DirectionLike)
	require.NoError(t, err)
	count, err = svc.CountLikedYou(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// flip to PASS: counter drops, penalty lands once
	_, err = svc.RecordSwipe(ctx, 1, 2, db.DirectionPass)
	require.NoError(t, err)
	count, err = svc.CountLikedYou(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// flip back to LIKE: counter recovers, no second penalty
	_, err = svc.RecordSwipe(ctx, 1, 2, db.DirectionLike)
	require.NoError(t, err)
	count, err = svc.CountLikedYou(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var target db.Profile
	require.NoError(t, appCtx.DB.Where("user_id = ?", 2).First(&target).Error)
	assert.Equal(t, 1, target.DislikeCount)
	assert.Equal(t, 70, target.ExposureScore)
}

func TestCountLikedYouCache(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedUsers(t, appCtx.DB, 3)

	_, err := svc.RecordSwipe(ctx, 2, 1, db.DirectionLike)
	require.NoError(t, err)
	_, err = svc.RecordSwipe(ctx, 3, 1, db.DirectionLike)
	require.NoError(t, err)

	// first call → cache (maintained by RecordSwipe)
	count, err := svc.CountLikedYou(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// wipe the cache → DB fallback + refill
	require.NoError(t, appCtx.RedisCache.Del(ctx, appCtx.RedisCache.KeyForLikeCount(1)))

	count, err = svc.CountLikedYou(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = svc.CountLikedYou(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
