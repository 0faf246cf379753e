package db

import (
	"time"
)

// Swipe directions.
const (
	DirectionLike = "LIKE"
	DirectionPass = "PASS"
)

// User table. Identity is owned by the auth layer; everything else references
// users by ID.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Active       bool      `gorm:"default:true" json:"active"`
	LastLoginAt  time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Profile holds the dating profile for a user. One row per user, never
// hard-deleted (IsDeleted flag only).
//
// Photos and BlockedUsers are JSON columns so the row keeps the product's
// one-row-per-profile shape across mysql and sqlite.
type Profile struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint64    `gorm:"uniqueIndex;not null" json:"userId"`
	Age           int       `gorm:"not null" json:"age"`
	Gender        string    `gorm:"size:16;not null" json:"gender"`
	City          string    `gorm:"size:128;not null" json:"city"`
	Bio           string    `gorm:"type:text" json:"bio"`
	Photos        []string  `gorm:"serializer:json;type:text" json:"photos"`
	ExposureScore int       `gorm:"not null;default:100" json:"exposureScore"`
	DislikeCount  int       `gorm:"not null;default:0" json:"dislikeCount"`
	BlockCount    int       `gorm:"not null;default:0" json:"blockCount"`
	ChatFailCount int       `gorm:"not null;default:0" json:"chatFailCount"`
	IsDeleted     bool      `gorm:"not null;default:false" json:"isDeleted"`
	BlockedUsers  []uint64  `gorm:"serializer:json;type:text" json:"blockedUsers"`
	IsUnderage    bool      `gorm:"not null;default:false" json:"isUnderage"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// HasBlocked reports whether the profile's owner has blocked the given user.
func (p *Profile) HasBlocked(userID uint64) bool {
	for _, id := range p.BlockedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// Swipe records one directional decision by swiper about target.
//
// Composite PK: (SwiperID, TargetID)
//   - One effective row per ordered pair; re-swiping overwrites instead of
//     appending, so the ledger stays a function of the pair.
//
// Index idx_swiper_target_direction optimizes the mirror-like lookup done by
// the match reconciler and the swiped-target scan done by the feed.
type Swipe struct {
	SwiperID  uint64    `gorm:"primaryKey;index:idx_swiper_target_direction,priority:1" json:"swiperId"`
	TargetID  uint64    `gorm:"primaryKey;index:idx_swiper_target_direction,priority:2" json:"targetId"`
	Direction string    `gorm:"size:8;not null;index:idx_swiper_target_direction,priority:3" json:"direction"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Match records that two users mutually liked each other.
//
// The pair is stored canonicalized: UserAID is always the smaller of the two
// ids. The unique index on (user_a_id, user_b_id) is what makes concurrent
// reconciliation safe: the second insert for the same pair conflicts and the
// caller falls back to reading the surviving row.
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserAID   uint64    `gorm:"not null;uniqueIndex:uq_match_pair,priority:1" json:"user1Id"`
	UserBID   uint64    `gorm:"not null;uniqueIndex:uq_match_pair,priority:2" json:"user2Id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// NormalizePair returns the canonical (low, high) ordering of a user pair.
func NormalizePair(a, b uint64) (uint64, uint64) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasMember reports whether userID is one of the match's two participants.
// This is the authorization predicate gating the message thread.
func (m *Match) HasMember(userID uint64) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// PartnerOf returns the other participant of the match.
func (m *Match) PartnerOf(userID uint64) uint64 {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

// Message belongs to exactly one match. Thread order is CreatedAt ascending
// with ID as tiebreak. Immutable once created.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID   uint64    `gorm:"not null;index" json:"matchId"`
	SenderID  uint64    `gorm:"not null" json:"senderId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Report records a user reporting another. Reported users are also blocked by
// the reporter as a side effect.
type Report struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ReporterID uint64    `gorm:"not null;index" json:"reporterId"`
	TargetID   uint64    `gorm:"not null;index" json:"targetId"`
	Reason     string    `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
