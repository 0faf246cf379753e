package profile

import (
	"context"
	"strings"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/db"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/repository"
)

// Penalty identifies one kind of negative signal against a profile. Each
// penalty silently lowers the exposure score (floor 0) and bumps its counter.
type Penalty string

const (
	PenaltyDislike  Penalty = "dislike"
	PenaltyBlock    Penalty = "block"
	PenaltyChatFail Penalty = "chat_fail"
)

// Service owns the profile store: profile CRUD, soft delete, blocks, reports
// and the silent penalty bookkeeping.
type Service struct {
	appCtx      *app.AppContext
	profileRepo *repository.ProfileRepository
	reportRepo  *repository.ReportRepository
}

// NewProfileService creates a new profile service with dependencies from AppContext.
func NewProfileService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		profileRepo: repository.NewProfileRepository(appCtx.DB),
		reportRepo:  repository.NewReportRepository(appCtx.DB),
	}
}

// UpsertInput carries the profile fields of a create or partial-update call.
// Nil fields are left untouched on update; create requires age, gender, city.
type UpsertInput struct {
	Age    *int      `json:"age"`
	Gender *string   `json:"gender"`
	City   *string   `json:"city"`
	Bio    *string   `json:"bio"`
	Photos *[]string `json:"photos"`
}

// GetMe returns the caller's profile.
func (s *Service) GetMe(ctx context.Context, userID uint64) (*db.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, httperr.NotFound("profile not found")
	}
	return profile, nil
}

// Upsert creates the caller's profile on first call and applies a partial
// update afterwards.
func (s *Service) Upsert(ctx context.Context, userID uint64, input UpsertInput) (*db.Profile, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return s.create(ctx, userID, input)
	}
	return s.update(ctx, existing, input)
}

func (s *Service) create(ctx context.Context, userID uint64, input UpsertInput) (*db.Profile, error) {
	if input.Age == nil || *input.Age <= 0 {
		return nil, httperr.Validation("age must be a positive integer")
	}
	if input.Gender == nil || strings.TrimSpace(*input.Gender) == "" {
		return nil, httperr.Validation("gender is required")
	}
	if input.City == nil || strings.TrimSpace(*input.City) == "" {
		return nil, httperr.Validation("city is required")
	}

	profile := &db.Profile{
		UserID:        userID,
		Age:           *input.Age,
		Gender:        strings.TrimSpace(*input.Gender),
		City:          strings.TrimSpace(*input.City),
		ExposureScore: 100,
		Photos:        []string{},
		BlockedUsers:  []uint64{},
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Photos != nil {
		profile.Photos = *input.Photos
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.appCtx.Logger.Info("profile created", "user_id", userID)
	return profile, nil
}

func (s *Service) update(ctx context.Context, profile *db.Profile, input UpsertInput) (*db.Profile, error) {
	if input.Age != nil {
		if *input.Age <= 0 {
			return nil, httperr.Validation("age must be a positive integer")
		}
		profile.Age = *input.Age
	}
	if input.Gender != nil {
		if strings.TrimSpace(*input.Gender) == "" {
			return nil, httperr.Validation("gender must not be empty")
		}
		profile.Gender = strings.TrimSpace(*input.Gender)
	}
	if input.City != nil {
		if strings.TrimSpace(*input.City) == "" {
			return nil, httperr.Validation("city must not be empty")
		}
		profile.City = strings.TrimSpace(*input.City)
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Photos != nil {
		profile.Photos = *input.Photos
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SoftDelete flags the caller's profile as deleted. The row is kept; the feed
// stops surfacing it.
func (s *Service) SoftDelete(ctx context.Context, userID uint64) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return httperr.NotFound("profile not found")
	}

	profile.IsDeleted = true
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return err
	}

	s.appCtx.Logger.Info("profile soft-deleted", "user_id", userID)
	return nil
}

// Block adds target to the caller's block list and applies the block penalty
// to the target. Idempotent: re-blocking is a no-op and no double penalty.
func (s *Service) Block(ctx context.Context, userID, targetID uint64) error {
	if userID == targetID {
		return httperr.Validation("cannot block yourself")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return httperr.NotFound("profile not found")
	}
	if profile.HasBlocked(targetID) {
		return nil
	}

	profile.BlockedUsers = append(profile.BlockedUsers, targetID)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return err
	}

	s.ApplyPenalty(ctx, targetID, PenaltyBlock)
	return nil
}

// Report stores an abuse report and blocks the reported user on the
// reporter's behalf. The reporter's profile is resolved up front so a
// reporter without one fails before any row is written.
func (s *Service) Report(ctx context.Context, reporterID, targetID uint64, reason string) error {
	if reporterID == targetID {
		return httperr.Validation("cannot report yourself")
	}

	reporter, err := s.profileRepo.GetByUserID(ctx, reporterID)
	if err != nil {
		return err
	}
	if reporter == nil {
		return httperr.NotFound("profile not found")
	}

	if err := s.reportRepo.Create(ctx, reporterID, targetID, reason); err != nil {
		return err
	}
	return s.Block(ctx, reporterID, targetID)
}

// ApplyPenalty lowers the target's exposure score and bumps the matching
// counter. Penalties are silent: a missing target profile or a write failure
// never fails the triggering operation, it is only logged.
func (s *Service) ApplyPenalty(ctx context.Context, targetUserID uint64, penalty Penalty) {
	profile, err := s.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil || profile == nil {
		return
	}

	score := profile.ExposureScore
	switch penalty {
	case PenaltyDislike:
		profile.DislikeCount++
		score -= 30
	case PenaltyBlock:
		profile.BlockCount++
		score -= 20
	case PenaltyChatFail:
		profile.ChatFailCount++
		score -= 10
	default:
		return
	}
	profile.ExposureScore = max(0, score)

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.appCtx.Logger.Warn("penalty write failed", "user_id", targetUserID, "penalty", penalty, "err", err)
	}
}
