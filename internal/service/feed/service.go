package feed

import (
	"context"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/db"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/repository"
	"github.com/sparkdate/spark-backend/internal/utils/pagination"
)

// DefaultLimit caps one page of recommendations.
const DefaultLimit = 10

// Recommendation is a feed entry: a candidate profile plus the owner's
// username for display.
type Recommendation struct {
	db.Profile
	Username string `json:"username"`
}

// Service computes the recommendation feed. Pure read, no side effects.
type Service struct {
	appCtx      *app.AppContext
	profileRepo *repository.ProfileRepository
	swipeRepo   *repository.SwipeRepository
	userRepo    *repository.UserRepository
}

// NewFeedService creates a new feed service with dependencies from AppContext.
func NewFeedService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		profileRepo: repository.NewProfileRepository(appCtx.DB),
		swipeRepo:   repository.NewSwipeRepository(appCtx.DB),
		userRepo:    repository.NewUserRepository(appCtx.DB),
	}
}

// GetRecommendations returns the next page of candidates for the viewer.
//
// Exclusion set: the viewer, every target the viewer already swiped on
// (either direction), users the viewer blocked, soft-deleted and underage
// profiles, and candidates who blocked the viewer. The page is keyed by an
// opaque cursor over profile ids; it can come back short of the cap when
// candidate-side blocks are filtered out, which is fine since ranking and
// completeness are non-goals.
func (s *Service) GetRecommendations(ctx context.Context, viewerID uint64, pageToken *string) ([]Recommendation, *string, error) {
	cursor, err := pagination.Decode(deref(pageToken))
	if err != nil {
		return nil, nil, httperr.Validation("invalid pagination token")
	}

	swiped, err := s.swipeRepo.SwipedTargetIDs(ctx, viewerID)
	if err != nil {
		return nil, nil, err
	}

	exclude := append(swiped, viewerID)
	viewerProfile, err := s.profileRepo.GetByUserID(ctx, viewerID)
	if err != nil {
		return nil, nil, err
	}
	if viewerProfile != nil {
		exclude = append(exclude, viewerProfile.BlockedUsers...)
	}

	candidates, err := s.profileRepo.Candidates(ctx, exclude, cursor.ProfileID, DefaultLimit)
	if err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(candidates) > DefaultLimit {
		candidates = candidates[:DefaultLimit]
		token, _ := pagination.Encode(pagination.Cursor{
			ProfileID: candidates[DefaultLimit-1].ID,
		})
		nextToken = &token
	}

	// drop candidates who blocked the viewer
	page := candidates[:0]
	for _, c := range candidates {
		if c.HasBlocked(viewerID) {
			continue
		}
		page = append(page, c)
	}

	userIDs := make([]uint64, 0, len(page))
	for _, c := range page {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.userRepo.ByIDs(ctx, userIDs)
	if err != nil {
		return nil, nil, err
	}

	recs := make([]Recommendation, 0, len(page))
	for _, c := range page {
		owner, ok := users[c.UserID]
		if !ok {
			// profile whose user row is gone: never surface it half-empty
			continue
		}
		recs = append(recs, Recommendation{
			Profile:  c,
			Username: owner.Username,
		})
	}

	s.appCtx.Logger.Debug("feed computed", "viewer", viewerID, "count", len(recs))
	return recs, nextToken, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
