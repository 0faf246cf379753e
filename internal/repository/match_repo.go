package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sparkdate/spark-backend/internal/db"
)

// MatchRepository provides data access for mutual matches.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// CreateIfAbsent materializes the match for an unordered user pair exactly
// once.
//
// The pair is canonicalized to (low, high) and inserted under the unique
// uq_match_pair index with insert-conflict-is-a-success semantics: when two
// reconciliations race on the same pair, one insert wins and the other reads
// the surviving row back. Returns the match and whether this call created it.
func (r *MatchRepository) CreateIfAbsent(ctx context.Context, userA, userB uint64) (*db.Match, bool, error) {
	low, high := db.NormalizePair(userA, userB)
	match := db.Match{UserAID: low, UserBID: high}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).
		Create(&match)
	if res.Error != nil {
		return nil, false, res.Error
	}

	if res.RowsAffected == 0 {
		// lost the race or pair already matched: fetch the existing row
		existing, err := r.GetByPair(ctx, userA, userB)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	return &match, true, nil
}

// GetByPair returns the match for an unordered user pair.
func (r *MatchRepository) GetByPair(ctx context.Context, userA, userB uint64) (*db.Match, error) {
	low, high := db.NormalizePair(userA, userB)
	var match db.Match
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", low, high).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetByID returns the match with the given id.
func (r *MatchRepository) GetByID(ctx context.Context, id uint64) (*db.Match, error) {
	var match db.Match
	if err := r.db.WithContext(ctx).First(&match, id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// ListForUser returns every match the user participates in, newest first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error
	return matches, err
}
