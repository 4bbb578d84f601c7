package handlers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailquest/models"
)

func TestCreateAchievementValidation(t *testing.T) {
	app, _ := setupTest(t)

	status, body := doJSON(t, app, "POST", "/api/achievements", map[string]interface{}{
		"title":           "Distance Star",
		"condition_type":  "distance_walked",
		"condition_value": 10,
	})
	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "condition_type")

	status, _ = doJSON(t, app, "POST", "/api/achievements", map[string]interface{}{
		"condition_type":  "points",
		"condition_value": 10,
	})
	assert.Equal(t, 400, status)

	status, body = doJSON(t, app, "POST", "/api/achievements", map[string]interface{}{
		"title":           "Century",
		"condition_type":  "points",
		"condition_value": 100,
		"reward_points":   50,
	})
	require.Equal(t, 201, status)
	created := body["achievement"].(map[string]interface{})
	assert.Equal(t, "Century", created["title"])

	status, body = doJSON(t, app, "GET", "/api/achievements", nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(1), body["total"])
}

func TestAchievementStatusEndpoint(t *testing.T) {
	app, db := setupTest(t)
	user := seedUser(t, db, 150)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Century", ConditionType: models.ConditionPoints, ConditionValue: 100, RewardPoints: 50,
	}).Error)

	status, _ := doJSON(t, app, "GET", "/api/achievements/status", nil)
	assert.Equal(t, 400, status)

	status, body := doJSON(t, app, "GET", "/api/achievements/status?user_id=abc", nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid user_id", body["error"])

	status, body = doJSON(t, app, "GET", fmt.Sprintf("/api/achievements/status?user_id=%d", user.ID), nil)
	require.Equal(t, 200, status)
	entries := body["achievements"].([]interface{})
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].(map[string]interface{})["unlocked"])
}

func TestCheckAchievementsEndpoint(t *testing.T) {
	app, db := setupTest(t)
	user := seedUser(t, db, 150)
	require.NoError(t, db.Create(&models.Achievement{
		Title: "Century", ConditionType: models.ConditionPoints, ConditionValue: 100, RewardPoints: 50,
	}).Error)

	target := fmt.Sprintf("/api/achievements/check?user_id=%d", user.ID)

	status, body := doJSON(t, app, "POST", target, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, []interface{}{"Century"}, body["unlocked"])
	assert.Equal(t, float64(50), body["awarded_points"])

	// Checking again grants nothing further.
	status, body = doJSON(t, app, "POST", target, nil)
	require.Equal(t, 200, status)
	assert.Empty(t, body["unlocked"])
	assert.Equal(t, float64(0), body["awarded_points"])

	status, _ = doJSON(t, app, "POST", "/api/achievements/check?user_id=999", nil)
	assert.Equal(t, 404, status)
}
