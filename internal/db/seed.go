package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCities = []string{"London", "Manchester", "Bristol", "Leeds", "Glasgow", "Birmingham"}

var seedOpeners = []string{
	"Hey! We matched!",
	"Hi there, how's your week going?",
	"Nice photos! Where was the second one taken?",
	"Finally, someone from my city!",
}

// SeedTestData resets the database and populates it with demo users, profiles
// and swipes.
//
// Behavior:
//  1. Clears all tables.
//  2. Creates 20 users (10 male, 10 female) with hashed passwords and profiles.
//  3. Generates ~200 swipes with ~70% likes; every 3rd pair is forced mutual
//     and materialized as a match, some with opening messages.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(database *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"messages", "matches", "swipes", "reports", "profiles", "users"} {
		if err := database.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	// Reset auto-increment sequences
	switch database.Dialector.Name() {
	case "mysql":
		for _, table := range []string{"messages", "matches", "reports", "profiles", "users"} {
			database.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		database.Exec("DELETE FROM sqlite_sequence")
	}

	log.Println("Cleared existing data")

	// --- Seed users + profiles (10 male, 10 female) ---
	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		gender := "male"
		if i > 10 {
			gender = "female"
		}

		user := User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Active:       true,
			LastLoginAt:  time.Now().Add(-time.Duration(r.Intn(500)) * time.Hour),
		}
		if err := database.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}

		profile := Profile{
			UserID:        user.ID,
			Age:           21 + r.Intn(25),
			Gender:        gender,
			City:          seedCities[r.Intn(len(seedCities))],
			Bio:           fmt.Sprintf("Hi, I'm user%d. Ask me anything.", i),
			Photos:        []string{fmt.Sprintf("https://i.pravatar.cc/300?img=%d", i)},
			ExposureScore: 100,
			BlockedUsers:  []uint64{},
		}
		if err := database.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
	}
	log.Println("Seeded 20 users with profiles.")

	// --- Seed swipes (~200) with mutual pairs every 3rd decision ---
	swipeUpsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "target_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"direction", "updated_at"}),
	}
	matchGuard := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
		DoNothing: true,
	}

	var matchIDs []uint64
	counter := 0
	for swiperID := uint64(1); swiperID <= 20; swiperID++ {
		for j := 0; j < 12; j++ {
			targetID := uint64(r.Intn(20) + 1)
			if swiperID == targetID {
				continue
			}

			direction := DirectionPass
			if r.Intn(100) < 70 {
				direction = DirectionLike
			}

			// guarantee a mutual like every 3rd decision
			if counter%3 == 0 {
				direction = DirectionLike
				mirror := Swipe{SwiperID: targetID, TargetID: swiperID, Direction: DirectionLike}
				database.Clauses(swipeUpsert).Create(&mirror)

				low, high := NormalizePair(swiperID, targetID)
				match := Match{UserAID: low, UserBID: high}
				if err := database.Clauses(matchGuard).Create(&match).Error; err == nil && match.ID != 0 {
					matchIDs = append(matchIDs, match.ID)
				}
			}

			swipe := Swipe{SwiperID: swiperID, TargetID: targetID, Direction: direction}
			if err := database.Clauses(swipeUpsert).Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			counter++
		}
	}
	log.Printf("Seeded swipes, %d matches.", len(matchIDs))

	// --- Opening messages for half the matches ---
	for _, matchID := range matchIDs {
		if r.Intn(2) == 0 {
			continue
		}
		var match Match
		if err := database.First(&match, matchID).Error; err != nil {
			continue
		}
		message := Message{
			MatchID:  match.ID,
			SenderID: match.UserAID,
			Content:  seedOpeners[r.Intn(len(seedOpeners))],
		}
		database.Create(&message)
	}

	return nil
}
