package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trailquest/models"
)

// setupTestDB opens a fresh in-memory database named after the test so
// parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Route{},
		&models.Challenge{},
		&models.Path{},
		&models.Task{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.RewardItem{},
		&models.UserReward{},
		&models.MotivationMessage{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, points, routes int) *models.User {
	t.Helper()
	user := &models.User{Name: "Explorer", TotalPoints: points, RoutesCompleted: routes, Badges: "[]"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func TestCheckAchievementsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 150, 0)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Century", ConditionType: models.ConditionPoints, ConditionValue: 100, RewardPoints: 50,
	}).Error)

	result, err := CheckAchievements(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Century"}, result.Unlocked)
	assert.Equal(t, 50, result.AwardedPoints)
	assert.Equal(t, 200, reloadUser(t, db, user.ID).TotalPoints)

	// Re-running with no new progress changes nothing.
	again, err := CheckAchievements(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Unlocked)
	assert.Equal(t, 0, again.AwardedPoints)
	assert.Equal(t, 200, reloadUser(t, db, user.ID).TotalPoints)
}

func TestCheckAchievementsThreshold(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Century", ConditionType: models.ConditionPoints, ConditionValue: 100, RewardPoints: 10,
	}).Error)

	t.Run("one short stays locked", func(t *testing.T) {
		user := createUser(t, db, 99, 0)
		result, err := CheckAchievements(db, user.ID)
		require.NoError(t, err)
		assert.Empty(t, result.Unlocked)

		require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("total_points", gorm.Expr("total_points + ?", 1)).Error)

		result, err = CheckAchievements(db, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Century"}, result.Unlocked)
	})

	t.Run("exact threshold unlocks", func(t *testing.T) {
		user := createUser(t, db, 100, 0)
		result, err := CheckAchievements(db, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Century"}, result.Unlocked)
	})
}

func TestCheckAchievementsUnknownConditionSkipped(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 500, 10)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Mystery", ConditionType: "distance_walked", ConditionValue: 1,
	}).Error)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Century", ConditionType: models.ConditionPoints, ConditionValue: 100, RewardPoints: 5,
	}).Error)

	result, err := CheckAchievements(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Century"}, result.Unlocked)
	assert.NotContains(t, result.Unlocked, "Mystery")
}

func TestCheckAchievementsUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := CheckAchievements(db, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetAchievementStatusIsReadOnly(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 150, 0)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Century", ConditionType: models.ConditionPoints, ConditionValue: 100, RewardPoints: 50,
	}).Error)

	status, err := GetAchievementStatus(db, user.ID)
	require.NoError(t, err)
	require.Len(t, status, 1)
	// Satisfied but not yet checked in: still reported locked, nothing
	// granted.
	assert.False(t, status[0].Unlocked)
	assert.Equal(t, 150, reloadUser(t, db, user.ID).TotalPoints)

	_, err = CheckAchievements(db, user.ID)
	require.NoError(t, err)

	status, err = GetAchievementStatus(db, user.ID)
	require.NoError(t, err)
	assert.True(t, status[0].Unlocked)
}

func TestClaimReward(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 150, 0)
	item := models.RewardItem{ItemName: "Golden Compass", Cost: 120, Category: "Badge"}
	require.NoError(t, db.Create(&item).Error)

	updated, claimed, err := ClaimReward(db, user.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.TotalPoints)
	assert.Equal(t, "Golden Compass", claimed.ItemName)

	inventory, err := UserInventory(db, user.ID)
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.Equal(t, item.ID, inventory[0].ID)
}

func TestClaimRewardInsufficientPoints(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 100, 0)
	item := models.RewardItem{ItemName: "Golden Compass", Cost: 120}
	require.NoError(t, db.Create(&item).Error)

	_, _, err := ClaimReward(db, user.ID, item.ID)
	assert.ErrorIs(t, err, models.ErrInsufficientPoints)

	// Failed claim leaves the user untouched.
	assert.Equal(t, 100, reloadUser(t, db, user.ID).TotalPoints)
	inventory, err := UserInventory(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, inventory)
}

func TestClaimRewardDuplicate(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 300, 0)
	item := models.RewardItem{ItemName: "Golden Compass", Cost: 120}
	require.NoError(t, db.Create(&item).Error)

	_, _, err := ClaimReward(db, user.ID, item.ID)
	require.NoError(t, err)

	_, _, err = ClaimReward(db, user.ID, item.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyOwned)

	// The rolled-back duplicate must not deduct a second time.
	assert.Equal(t, 180, reloadUser(t, db, user.ID).TotalPoints)
	inventory, err := UserInventory(db, user.ID)
	require.NoError(t, err)
	assert.Len(t, inventory, 1)
}

func TestClaimRewardDuplicateAfterSpending(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 150, 0)
	item := models.RewardItem{ItemName: "Golden Compass", Cost: 120}
	require.NoError(t, db.Create(&item).Error)

	updated, _, err := ClaimReward(db, user.ID, item.ID)
	require.NoError(t, err)
	require.Equal(t, 30, updated.TotalPoints)

	// The balance no longer covers the cost, but a repeat claim is a
	// duplicate, not an insufficient-funds failure.
	_, _, err = ClaimReward(db, user.ID, item.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyOwned)
	assert.Equal(t, 30, reloadUser(t, db, user.ID).TotalPoints)
}

func TestClaimRewardNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 300, 0)
	item := models.RewardItem{ItemName: "Golden Compass", Cost: 120}
	require.NoError(t, db.Create(&item).Error)

	_, _, err := ClaimReward(db, 999, item.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, _, err = ClaimReward(db, user.ID, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCompleteRoute(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 0, 0)
	route := models.Route{UserID: user.ID, RouteType: "scenic"}
	require.NoError(t, db.Create(&route).Error)

	updated, result, err := CompleteRoute(db, route.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, models.RoutePoints, updated.PointsEarned)
	assert.Equal(t, models.RoutePoints, result.PointsAwarded)
	assert.NotEmpty(t, result.Motivation)

	after := reloadUser(t, db, user.ID)
	assert.Equal(t, models.RoutePoints, after.TotalPoints)
	assert.Equal(t, 1, after.RoutesCompleted)
	assert.Contains(t, after.BadgeList(), RouteCompleterBadge)
}

func TestCompleteRouteTwice(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 0, 0)
	route := models.Route{UserID: user.ID}
	require.NoError(t, db.Create(&route).Error)

	_, _, err := CompleteRoute(db, route.ID, user.ID)
	require.NoError(t, err)

	_, _, err = CompleteRoute(db, route.ID, user.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyCompleted)

	// Nothing double-awarded.
	after := reloadUser(t, db, user.ID)
	assert.Equal(t, models.RoutePoints, after.TotalPoints)
	assert.Equal(t, 1, after.RoutesCompleted)
}

func TestCompleteRouteWithoutUser(t *testing.T) {
	db := setupTestDB(t)
	route := models.Route{UserID: 0}
	require.NoError(t, db.Create(&route).Error)

	updated, result, err := CompleteRoute(db, route.ID, 0)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, 0, result.PointsAwarded)
	assert.Empty(t, result.Motivation)
}

func TestCompleteRouteNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, _, err := CompleteRoute(db, 42, 0)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCompleteChallenge(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 0, 0)
	route := models.Route{UserID: user.ID}
	require.NoError(t, db.Create(&route).Error)
	challenge := models.Challenge{RouteID: route.ID, Title: "Scenic Viewpoint", Points: 25}
	require.NoError(t, db.Create(&challenge).Error)

	updated, result, err := CompleteChallenge(db, challenge.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, 25, result.PointsAwarded)
	assert.Equal(t, 25, reloadUser(t, db, user.ID).TotalPoints)

	_, _, err = CompleteChallenge(db, challenge.ID, user.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyCompleted)
	assert.Equal(t, 25, reloadUser(t, db, user.ID).TotalPoints)
}

func TestUpdateTaskStatus(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 0, 0)
	path := models.Path{Name: "Scenic Mountain Trail"}
	require.NoError(t, db.Create(&path).Error)
	task := models.Task{PathID: path.ID, TaskDescription: "Reach the summit", RewardPoints: 30, Status: models.TaskNotStarted}
	require.NoError(t, db.Create(&task).Error)

	_, _, err := UpdateTaskStatus(db, task.ID, "Done", user.ID)
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	// Moving to In Progress pays nothing.
	updated, result, err := UpdateTaskStatus(db, task.ID, models.TaskInProgress, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, updated.Status)
	assert.Nil(t, updated.CompletedAt)
	assert.Equal(t, 0, result.PointsAwarded)
	assert.Equal(t, 0, reloadUser(t, db, user.ID).TotalPoints)

	// First completion pays once.
	updated, result, err = UpdateTaskStatus(db, task.ID, models.TaskCompleted, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, 30, result.PointsAwarded)
	assert.NotEmpty(t, result.Motivation)
	assert.Equal(t, 30, reloadUser(t, db, user.ID).TotalPoints)

	// Completed is terminal.
	_, _, err = UpdateTaskStatus(db, task.ID, models.TaskInProgress, user.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyCompleted)
	_, _, err = UpdateTaskStatus(db, task.ID, models.TaskCompleted, user.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyCompleted)
	assert.Equal(t, 30, reloadUser(t, db, user.ID).TotalPoints)
}

func TestEndToEndProgression(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Trail Novice", ConditionType: models.ConditionRoutesCompleted, ConditionValue: 1, RewardPoints: 25,
	}).Error)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Explorer Badge", ConditionType: models.ConditionPoints, ConditionValue: 100, RewardPoints: 50,
	}).Error)
	item := models.RewardItem{ItemName: "Golden Compass", Cost: 120, Category: "Badge"}
	require.NoError(t, db.Create(&item).Error)

	user := createUser(t, db, 0, 0)
	first := models.Route{UserID: user.ID}
	second := models.Route{UserID: user.ID}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	// First route: 50 route points plus the first-route achievement.
	_, result, err := CompleteRoute(db, first.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Trail Novice"}, result.Achievement.Unlocked)
	assert.Equal(t, 25, result.Achievement.AwardedPoints)
	after := reloadUser(t, db, user.ID)
	assert.Equal(t, 75, after.TotalPoints)
	assert.Equal(t, 1, after.RoutesCompleted)

	// Second route crosses the 100 point threshold.
	_, result, err = CompleteRoute(db, second.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Explorer Badge"}, result.Achievement.Unlocked)
	after = reloadUser(t, db, user.ID)
	assert.Equal(t, 175, after.TotalPoints)
	assert.Equal(t, 2, after.RoutesCompleted)
	assert.ElementsMatch(t, []string{RouteCompleterBadge, "Trail Novice", "Explorer Badge"}, after.BadgeList())

	// Spend the earnings, once.
	updated, _, err := ClaimReward(db, user.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, updated.TotalPoints)

	_, _, err = ClaimReward(db, user.ID, item.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyOwned)
	assert.Equal(t, 55, reloadUser(t, db, user.ID).TotalPoints)
}

func TestMotivationFor(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.MotivationMessage{
		TriggerEvent: models.TriggerRouteCompleted,
		MessageText:  "Route done, well ridden!",
	}).Error)

	assert.Equal(t, "Route done, well ridden!", MotivationFor(db, models.TriggerRouteCompleted))

	// Empty catalog falls back to the built-in lines.
	assert.NotEmpty(t, MotivationFor(db, models.TriggerTaskCompleted))
	assert.Equal(t, "Keep going!", MotivationFor(db, "unknown_trigger"))
}
