package achievements

import (
	"time"

	"github.com/learnhub/backend/internal/models"
)

// grant pairs a catalog entry with the moment its row was inserted.
type grant struct {
	achievement models.Achievement
	earnedAt    time.Time
}

// relayUnlocks projects newly inserted grants into the toast/snackbar payload
// the UI consumes. No decision logic lives here; a missed notification is
// acceptable because the grant itself is already persisted.
func relayUnlocks(granted []grant) []models.AchievementUnlocked {
	unlocked := make([]models.AchievementUnlocked, 0, len(granted))
	for _, g := range granted {
		unlocked = append(unlocked, models.AchievementUnlocked{
			AchievementID: g.achievement.ID,
			Name:          g.achievement.Name,
			Description:   g.achievement.Description,
			Points:        g.achievement.Points,
			EarnedAt:      g.earnedAt,
		})
	}
	return unlocked
}
