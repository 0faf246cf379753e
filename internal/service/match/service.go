package match

import (
	"context"
	"time"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/db"
	"github.com/sparkdate/spark-backend/internal/repository"
)

// Partner is the other participant of a match as the caller sees them.
type Partner struct {
	db.User
	Profile *db.Profile `json:"profile"`
}

// Entry is one row of the caller's match list.
type Entry struct {
	ID          uint64      `json:"id"`
	CreatedAt   time.Time   `json:"createdAt"`
	Partner     Partner     `json:"partner"`
	LastMessage *db.Message `json:"lastMessage,omitempty"`
}

// Service lists a user's matches. Each match is symmetric: both participants
// see the same match id with the other user as partner.
type Service struct {
	appCtx      *app.AppContext
	matchRepo   *repository.MatchRepository
	messageRepo *repository.MessageRepository
	profileRepo *repository.ProfileRepository
	userRepo    *repository.UserRepository
}

// NewMatchService creates a new match service with dependencies from AppContext.
func NewMatchService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		matchRepo:   repository.NewMatchRepository(appCtx.DB),
		messageRepo: repository.NewMessageRepository(appCtx.DB),
		profileRepo: repository.NewProfileRepository(appCtx.DB),
		userRepo:    repository.NewUserRepository(appCtx.DB),
	}
}

// List returns the caller's matches with partner identity, partner profile
// and the latest thread message. Matches whose partner has no account or no
// profile anymore are skipped rather than surfaced half-empty.
func (s *Service) List(ctx context.Context, userID uint64) ([]Entry, error) {
	matches, err := s.matchRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	partnerIDs := make([]uint64, 0, len(matches))
	for _, m := range matches {
		partnerIDs = append(partnerIDs, m.PartnerOf(userID))
	}
	users, err := s.userRepo.ByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		partnerID := m.PartnerOf(userID)
		partnerUser, ok := users[partnerID]
		if !ok {
			continue
		}
		partnerProfile, err := s.profileRepo.GetByUserID(ctx, partnerID)
		if err != nil {
			return nil, err
		}
		if partnerProfile == nil {
			continue
		}

		lastMessage, err := s.messageRepo.LastForMatch(ctx, m.ID)
		if err != nil {
			return nil, err
		}

		entries = append(entries, Entry{
			ID:          m.ID,
			CreatedAt:   m.CreatedAt,
			Partner:     Partner{User: partnerUser, Profile: partnerProfile},
			LastMessage: lastMessage,
		})
	}

	return entries, nil
}
