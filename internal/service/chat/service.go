package chat

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/db"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/repository"
)

// Service owns the per-match message threads. Every operation is gated on
// the caller being a participant of the referenced match.
type Service struct {
	appCtx      *app.AppContext
	matchRepo   *repository.MatchRepository
	messageRepo *repository.MessageRepository
}

// NewChatService creates a new chat service with dependencies from AppContext.
func NewChatService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		matchRepo:   repository.NewMatchRepository(appCtx.DB),
		messageRepo: repository.NewMessageRepository(appCtx.DB),
	}
}

// guard resolves the match and checks the caller's membership.
func (s *Service) guard(ctx context.Context, callerID, matchID uint64) (*db.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("match not found")
	}
	if err != nil {
		return nil, err
	}
	if !match.HasMember(callerID) {
		return nil, httperr.Forbidden("not a participant of this match")
	}
	return match, nil
}

// ListMessages returns the full thread in send order.
func (s *Service) ListMessages(ctx context.Context, callerID, matchID uint64) ([]db.Message, error) {
	if _, err := s.guard(ctx, callerID, matchID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByMatch(ctx, matchID)
}

// SendMessage appends a message to the thread. Content must be non-empty
// after trimming; the stored content keeps the sender's original whitespace.
func (s *Service) SendMessage(ctx context.Context, callerID, matchID uint64, content string) (*db.Message, error) {
	if _, err := s.guard(ctx, callerID, matchID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, httperr.Validation("message content must not be empty")
	}

	message, err := s.messageRepo.Create(ctx, matchID, callerID, content)
	if err != nil {
		return nil, err
	}

	s.appCtx.Logger.Debug("message sent", "match_id", matchID, "sender_id", callerID)
	return message, nil
}
