package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sparkdate/spark-backend/internal/db"
)

// MessageRepository provides data access for match message threads.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// ListByMatch returns the full thread in send order: created_at ascending,
// id as tiebreak for same-timestamp inserts.
func (r *MessageRepository) ListByMatch(ctx context.Context, matchID uint64) ([]db.Message, error) {
	var messages []db.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// Create appends a message to the thread.
func (r *MessageRepository) Create(ctx context.Context, matchID, senderID uint64, content string) (*db.Message, error) {
	message := db.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
	}
	if err := r.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// LastForMatch returns the newest message of the thread, or nil for an empty
// thread.
func (r *MessageRepository) LastForMatch(ctx context.Context, matchID uint64) (*db.Message, error) {
	var message db.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at DESC, id DESC").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}
