package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sparkdate/spark-backend/internal/db"
)

// SwipeRepository provides data access for the swipe ledger.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// Upsert records the decision swiper → target.
//
// Behavior:
//   - If (swiper_id, target_id) exists → the row's direction is overwritten.
//   - If it doesn't exist → a new row is inserted.
//   - Composite PK keeps one effective row per ordered pair, so repeated
//     submissions never fork the ledger.
func (r *SwipeRepository) Upsert(ctx context.Context, swiperID, targetID uint64, direction string) error {
	swipe := db.Swipe{
		SwiperID:  swiperID,
		TargetID:  targetID,
		Direction: direction,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"direction", "updated_at"}),
		}).
		Create(&swipe).Error
}

// Get returns the effective swipe for the ordered pair, or nil if the swiper
// has not decided on the target yet.
func (r *SwipeRepository) Get(ctx context.Context, swiperID, targetID uint64) (*db.Swipe, error) {
	var swipe db.Swipe
	err := r.db.WithContext(ctx).
		Where("swiper_id = ? AND target_id = ?", swiperID, targetID).
		First(&swipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

// HasLiked reports whether swiper's effective decision on target is a LIKE.
// This is the mirror lookup the match reconciler runs after every LIKE.
func (r *SwipeRepository) HasLiked(ctx context.Context, swiperID, targetID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("swiper_id = ? AND target_id = ? AND direction = ?", swiperID, targetID, db.DirectionLike).
		Count(&count).Error
	return count > 0, err
}

// SwipedTargetIDs returns every target the swiper has already decided on,
// either direction. The feed excludes all of them.
func (r *SwipeRepository) SwipedTargetIDs(ctx context.Context, swiperID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("swiper_id = ?", swiperID).
		Pluck("target_id", &ids).Error
	return ids, err
}

// CountLikers returns how many users currently like the given target.
// Used as the DB fallback behind the Redis liked-you counter.
func (r *SwipeRepository) CountLikers(ctx context.Context, targetID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("target_id = ? AND direction = ?", targetID, db.DirectionLike).
		Count(&count).Error
	return count, err
}
