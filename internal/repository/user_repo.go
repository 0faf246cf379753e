package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sparkdate/spark-backend/internal/db"
)

// UserRepository provides read access to user identities.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// GetByID returns the user with the given id.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ByIDs returns the users with the given ids, keyed by id.
func (r *UserRepository) ByIDs(ctx context.Context, ids []uint64) (map[uint64]db.User, error) {
	result := make(map[uint64]db.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []db.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}
