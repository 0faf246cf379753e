package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sparkdate/spark-backend/internal/db"
)

// ProfileRepository provides data access for dating profiles.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// GetByUserID returns the profile owned by the given user, or nil if the user
// has not created one yet.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint64) (*db.Profile, error) {
	var profile db.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create inserts a new profile row. The unique index on user_id enforces at
// most one profile per user.
func (r *ProfileRepository) Create(ctx context.Context, profile *db.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Save writes back a mutated profile. Full save so the JSON-serialized
// columns (photos, blocked users) round-trip through gorm's serializer.
func (r *ProfileRepository) Save(ctx context.Context, profile *db.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Candidates returns feed candidates in profile-id order.
//
// SQL-side exclusions: the given user ids (self, swiped targets, users the
// viewer blocked), soft-deleted profiles and underage profiles. Candidates
// who blocked the viewer are filtered by the caller since blocked ids live in
// a JSON column. Fetches limit+1 rows so the caller can build a next cursor.
func (r *ProfileRepository) Candidates(
	ctx context.Context,
	excludeUserIDs []uint64,
	afterProfileID uint64,
	limit int,
) ([]db.Profile, error) {
	var profiles []db.Profile

	query := r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Where("is_deleted = ? AND is_underage = ?", false, false).
		Order("id ASC").
		Limit(limit + 1)

	if len(excludeUserIDs) > 0 {
		query = query.Where("user_id NOT IN ?", excludeUserIDs)
	}
	if afterProfileID > 0 {
		query = query.Where("id > ?", afterProfileID)
	}

	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
