package swipe

import (
	"context"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/cache"
	"github.com/sparkdate/spark-backend/internal/db"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/repository"
	"github.com/sparkdate/spark-backend/internal/service/profile"
)

// Result is the outcome of one swipe submission. MatchID is set only when
// Matched is true, and repeated submissions for an already-matched pair keep
// returning the same id.
type Result struct {
	Matched bool   `json:"matched"`
	MatchID uint64 `json:"matchId,omitempty"`
}

// Service implements the swipe ledger and the match reconciler: it records
// directional decisions, detects reciprocity and materializes each match
// exactly once.
type Service struct {
	appCtx     *app.AppContext
	swipeRepo  *repository.SwipeRepository
	matchRepo  *repository.MatchRepository
	profileSvc *profile.Service
}

// NewSwipeService creates a new swipe service with dependencies from AppContext.
func NewSwipeService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:     appCtx,
		swipeRepo:  repository.NewSwipeRepository(appCtx.DB),
		matchRepo:  repository.NewMatchRepository(appCtx.DB),
		profileSvc: profile.NewProfileService(appCtx),
	}
}

// RecordSwipe persists the decision swiper → target and reconciles on LIKE.
//
// Behavior:
//   - Validates direction and rejects self-swipes before touching the ledger.
//   - Upserts the ledger row, so duplicate submissions never fork state.
//   - Side effects (cached liked-you counter, silent dislike penalty) fire
//     only when the effective direction actually changed; resubmitting the
//     same decision is a pure no-op beyond the upsert.
//   - PASS short-circuits with {matched:false}; no reconciliation is
//     attempted.
//   - LIKE looks up the mirror LIKE. On reciprocity the match is created via
//     a guarded insert on the canonical pair; losing the insert race degrades
//     to returning the existing match, never an error.
func (s *Service) RecordSwipe(ctx context.Context, swiperID, targetID uint64, direction string) (*Result, error) {
	if direction != db.DirectionLike && direction != db.DirectionPass {
		return nil, httperr.Validation("direction must be LIKE or PASS")
	}
	if swiperID == targetID {
		return nil, httperr.Validation("cannot swipe on self")
	}

	prev, err := s.swipeRepo.Get(ctx, swiperID, targetID)
	if err != nil {
		return nil, err
	}
	changed := prev == nil || prev.Direction != direction

	if err := s.swipeRepo.Upsert(ctx, swiperID, targetID, direction); err != nil {
		return nil, err
	}

	key := s.appCtx.RedisCache.KeyForLikeCount(targetID)
	if direction == db.DirectionPass {
		if changed {
			if prev != nil && prev.Direction == db.DirectionLike {
				_, _ = s.appCtx.RedisCache.Decr(ctx, key)
				_ = s.appCtx.RedisCache.Client.Expire(ctx, key, cache.LikeCountTTL).Err()
			}
			s.profileSvc.ApplyPenalty(ctx, targetID, profile.PenaltyDislike)
		}
		return &Result{Matched: false}, nil
	}

	if changed {
		_, _ = s.appCtx.RedisCache.Incr(ctx, key)
		_ = s.appCtx.RedisCache.Client.Expire(ctx, key, cache.LikeCountTTL).Err()
	}

	mutual, err := s.swipeRepo.HasLiked(ctx, targetID, swiperID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return &Result{Matched: false}, nil
	}

	match, created, err := s.matchRepo.CreateIfAbsent(ctx, swiperID, targetID)
	if err != nil {
		return nil, err
	}
	if created {
		s.appCtx.Logger.Info("match created",
			"match_id", match.ID, "user_a", match.UserAID, "user_b", match.UserBID)
	}

	return &Result{Matched: true, MatchID: match.ID}, nil
}

// CountLikedYou returns how many users currently like the caller.
// Cache-first strategy:
//  1. Read Redis (likes:count:userID) and refresh its TTL on hit.
//  2. On miss, fall back to the swipe ledger count.
//  3. Fill the cache with a fresh TTL.
func (s *Service) CountLikedYou(ctx context.Context, userID uint64) (int64, error) {
	if cached, ok, _ := s.appCtx.RedisCache.GetLikeCount(ctx, userID); ok {
		return max(0, cached), nil
	}

	count, err := s.swipeRepo.CountLikers(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = s.appCtx.RedisCache.SetLikeCount(ctx, userID, count)

	return count, nil
}
