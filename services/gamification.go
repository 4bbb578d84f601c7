// services/gamification.go - Points ledger, unlock engine, reward claims
package services

import (
	"errors"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trailquest/models"
)

// RouteCompleterBadge is granted on every successful route completion,
// independent of the achievement catalog.
const RouteCompleterBadge = "Route Completer"

// AchievementResult reports what a single unlock check granted.
type AchievementResult struct {
	Unlocked      []string `json:"unlocked"`
	AwardedPoints int      `json:"awarded_points"`
}

// CompletionResult aggregates what a completion flow returns alongside
// the updated entity.
type CompletionResult struct {
	PointsAwarded int               `json:"points_awarded"`
	Achievement   AchievementResult `json:"achievement"`
	Motivation    string            `json:"motivation,omitempty"`
}

// CheckAchievements runs the unlock engine for a user: every catalog
// entry not yet unlocked whose counter meets its threshold is recorded
// and its bonus points granted. Calling it again with no new progress is
// a no-op.
func CheckAchievements(db *gorm.DB, userID uint) (AchievementResult, error) {
	var result AchievementResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = checkAchievementsTx(tx, userID)
		return txErr
	})
	return result, err
}

// checkAchievementsTx is the unlock engine body. It must run inside the
// same transaction as the point grant that triggered it so the caller
// observes unlocks promptly.
func checkAchievementsTx(tx *gorm.DB, userID uint) (AchievementResult, error) {
	result := AchievementResult{Unlocked: []string{}}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, models.ErrNotFound
		}
		return result, err
	}

	// Catalog order breaks ties between simultaneously satisfied entries.
	var catalog []models.Achievement
	if err := tx.Order("id").Find(&catalog).Error; err != nil {
		return result, err
	}

	var unlockedIDs []uint
	if err := tx.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &unlockedIDs).Error; err != nil {
		return result, err
	}

	unlockedMap := make(map[uint]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlockedMap[id] = true
	}

	bonus := 0
	badgesChanged := false
	for _, ach := range catalog {
		if unlockedMap[ach.ID] {
			continue
		}

		counter, err := ach.ConditionType.Counter(&user)
		if err != nil {
			// Malformed catalog entry: never satisfied, never fatal.
			continue
		}
		if counter < ach.ConditionValue {
			continue
		}

		// The unique (user_id, achievement_id) index makes this insert
		// the arbiter under concurrent checks: whoever loses the race
		// inserts nothing and grants nothing.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserAchievement{
			UserID:        userID,
			AchievementID: ach.ID,
			UnlockedAt:    time.Now().UTC(),
		})
		if res.Error != nil {
			return result, res.Error
		}
		if res.RowsAffected == 0 {
			continue
		}

		result.Unlocked = append(result.Unlocked, ach.Title)
		bonus += ach.RewardPoints
		if user.AddBadge(ach.Title) {
			badgesChanged = true
		}
	}

	if len(result.Unlocked) == 0 {
		return result, nil
	}

	updates := map[string]interface{}{}
	if bonus != 0 {
		updates["total_points"] = gorm.Expr("total_points + ?", bonus)
	}
	if badgesChanged {
		updates["badges"] = user.Badges
	}
	if len(updates) > 0 {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return result, err
		}
	}

	result.AwardedPoints = bonus
	return result, nil
}

// AchievementStatus annotates every catalog entry with whether the user
// has unlocked it. Read-only: no points are granted here.
type AchievementStatus struct {
	models.Achievement
	Unlocked bool `json:"unlocked"`
}

func GetAchievementStatus(db *gorm.DB, userID uint) ([]AchievementStatus, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	var catalog []models.Achievement
	if err := db.Order("id").Find(&catalog).Error; err != nil {
		return nil, err
	}

	var unlockedIDs []uint
	if err := db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &unlockedIDs).Error; err != nil {
		return nil, err
	}
	unlockedMap := make(map[uint]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlockedMap[id] = true
	}

	status := make([]AchievementStatus, 0, len(catalog))
	for _, ach := range catalog {
		status = append(status, AchievementStatus{Achievement: ach, Unlocked: unlockedMap[ach.ID]})
	}
	return status, nil
}

// grantPoints applies a single atomic counter update to the user row.
// incRoutes also bumps routes_completed by one.
func grantPoints(tx *gorm.DB, userID uint, points int, incRoutes bool) error {
	updates := map[string]interface{}{
		"total_points": gorm.Expr("total_points + ?", points),
	}
	if incRoutes {
		updates["routes_completed"] = gorm.Expr("routes_completed + 1")
	}
	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CompleteRoute marks a route completed and, when a user is supplied
// (non-zero id), grants the flat route points, bumps routes_completed,
// grants the completion badge and runs the unlock engine. Re-completing
// a completed route fails with ErrAlreadyCompleted and awards nothing.
func CompleteRoute(db *gorm.DB, routeID, userID uint) (*models.Route, *CompletionResult, error) {
	var route models.Route
	result := &CompletionResult{Achievement: AchievementResult{Unlocked: []string{}}}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&route, routeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		// The completed flag is the single guard against double award.
		now := time.Now().UTC()
		res := tx.Model(&models.Route{}).
			Where("id = ? AND completed = ?", routeID, false).
			Updates(map[string]interface{}{
				"completed":     true,
				"points_earned": models.RoutePoints,
				"completed_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrAlreadyCompleted
		}

		if userID != 0 {
			if err := grantPoints(tx, userID, models.RoutePoints, true); err != nil {
				return err
			}
			if err := addUserBadge(tx, userID, RouteCompleterBadge); err != nil {
				return err
			}
			result.PointsAwarded = models.RoutePoints

			ach, err := checkAchievementsTx(tx, userID)
			if err != nil {
				return err
			}
			result.Achievement = ach
		}

		return tx.First(&route, routeID).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if userID != 0 {
		result.Motivation = MotivationFor(db, models.TriggerRouteCompleted)
	}
	return &route, result, nil
}

// CompleteChallenge marks a challenge completed and grants its own
// points value to the user, if one is supplied.
func CompleteChallenge(db *gorm.DB, challengeID, userID uint) (*models.Challenge, *CompletionResult, error) {
	var challenge models.Challenge
	result := &CompletionResult{Achievement: AchievementResult{Unlocked: []string{}}}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		now := time.Now().UTC()
		res := tx.Model(&models.Challenge{}).
			Where("id = ? AND completed = ?", challengeID, false).
			Updates(map[string]interface{}{"completed": true, "completed_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrAlreadyCompleted
		}

		if userID != 0 {
			if err := grantPoints(tx, userID, challenge.Points, false); err != nil {
				return err
			}
			result.PointsAwarded = challenge.Points

			ach, err := checkAchievementsTx(tx, userID)
			if err != nil {
				return err
			}
			result.Achievement = ach
		}

		return tx.First(&challenge, challengeID).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if userID != 0 {
		result.Motivation = MotivationFor(db, models.TriggerTaskCompleted)
	}
	return &challenge, result, nil
}

// UpdateTaskStatus moves a task between statuses. The first transition
// to Completed stamps completed_at and pays the task's reward points;
// a task that has ever completed is terminal and further updates fail
// with ErrAlreadyCompleted.
func UpdateTaskStatus(db *gorm.DB, taskID uint, status string, userID uint) (*models.Task, *CompletionResult, error) {
	if !models.ValidTaskStatus(status) {
		return nil, nil, models.ErrInvalidStatus
	}

	var task models.Task
	result := &CompletionResult{Achievement: AchievementResult{Unlocked: []string{}}}
	completing := false

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		if task.CompletedAt != nil {
			return models.ErrAlreadyCompleted
		}

		updates := map[string]interface{}{"status": status}
		if status == models.TaskCompleted {
			updates["completed_at"] = time.Now().UTC()
		}

		// completed_at doubles as the award guard: only the call that
		// stamps it pays out.
		q := tx.Model(&models.Task{}).Where("id = ? AND completed_at IS NULL", taskID)
		res := q.Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrAlreadyCompleted
		}

		if status == models.TaskCompleted {
			completing = true
			if userID != 0 {
				if err := grantPoints(tx, userID, task.RewardPoints, false); err != nil {
					return err
				}
				result.PointsAwarded = task.RewardPoints

				ach, err := checkAchievementsTx(tx, userID)
				if err != nil {
					return err
				}
				result.Achievement = ach
			}
		}

		return tx.First(&task, taskID).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if completing && userID != 0 {
		result.Motivation = MotivationFor(db, models.TriggerTaskCompleted)
	}
	return &task, result, nil
}

// ClaimReward spends points on a store item. The deduction is a
// compare-and-swap on the balance, and ownership is unique per user and
// item; any failure rolls the whole claim back.
func ClaimReward(db *gorm.DB, userID, itemID uint) (*models.User, *models.RewardItem, error) {
	var user models.User
	var item models.RewardItem

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		// Ownership is checked before the balance so a repeat claim reads
		// as a duplicate even when the remaining balance no longer covers
		// the cost.
		var owned int64
		if err := tx.Model(&models.UserReward{}).
			Where("user_id = ? AND reward_item_id = ?", userID, item.ID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return models.ErrAlreadyOwned
		}

		// Deduct only if the balance covers the cost; the condition keeps
		// total_points from ever going negative under concurrent claims.
		res := tx.Model(&models.User{}).
			Where("id = ? AND total_points >= ?", userID, item.Cost).
			UpdateColumn("total_points", gorm.Expr("total_points - ?", item.Cost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrInsufficientPoints
		}

		// Under concurrent claims the unique (user_id, reward_item_id)
		// index stays the arbiter: the loser inserts nothing and the
		// rollback restores its deducted points.
		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserReward{
			UserID:       userID,
			RewardItemID: item.ID,
			ClaimedAt:    time.Now().UTC(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrAlreadyOwned
		}

		return tx.First(&user, userID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, &item, nil
}

// UserInventory lists the reward items a user owns.
func UserInventory(db *gorm.DB, userID uint) ([]models.RewardItem, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	var items []models.RewardItem
	err := db.Joins("JOIN user_rewards ON user_rewards.reward_item_id = reward_items.id").
		Where("user_rewards.user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.RewardItem{}
	}
	return items, nil
}

// addUserBadge persists a badge label with set semantics.
func addUserBadge(tx *gorm.DB, userID uint, label string) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}
	if !user.AddBadge(label) {
		return nil
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).Update("badges", user.Badges).Error
}

// Built-in fallbacks when the motivation catalog has no entry for a
// trigger.
var defaultMotivations = map[string][]string{
	models.TriggerTaskCompleted:  {"🔥 You’re unstoppable! Keep going!", "Nice! Another one down."},
	models.TriggerRouteCompleted: {"Great job finishing the route!", "🏁 Route complete! On to the next adventure."},
	models.TriggerDailyLogin:     {"Welcome back, explorer!", "New day, new quests!"},
}

// MotivationFor picks a message for a trigger event, falling back to the
// built-in defaults when the catalog is empty for that trigger.
func MotivationFor(db *gorm.DB, trigger string) string {
	var messages []models.MotivationMessage
	if err := db.Where("trigger_event = ?", trigger).Find(&messages).Error; err == nil && len(messages) > 0 {
		return messages[rand.Intn(len(messages))].MessageText
	}

	defaults, ok := defaultMotivations[trigger]
	if !ok || len(defaults) == 0 {
		return "Keep going!"
	}
	return defaults[rand.Intn(len(defaults))]
}
