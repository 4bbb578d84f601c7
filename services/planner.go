// services/planner.go - Route option, map overlay and path suggestion
// generation. All geodata here is synthetic by design.
package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"trailquest/models"
)

// RouteOption is one of the planned variants offered for a start/end
// pair.
type RouteOption struct {
	Type        string              `json:"type"`
	Distance    float64             `json:"distance"`
	Duration    float64             `json:"duration"`
	Description string              `json:"description"`
	Waypoints   []models.Location   `json:"waypoints"`
	Color       string              `json:"color"`
	Challenges  []SuggestedActivity `json:"challenges"`
}

// SuggestedActivity is a challenge proposal attached to a route option.
type SuggestedActivity struct {
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    models.Location `json:"location"`
	Points      int             `json:"points"`
}

// GenerateWaypoints interpolates intermediate stops between start and
// end, with a small lateral wobble for the scenic and cheapest variants.
func GenerateWaypoints(routeType string, start, end models.Location, numPoints int) []models.Location {
	waypoints := make([]models.Location, 0, numPoints)
	for i := 1; i <= numPoints; i++ {
		progress := float64(i) / float64(numPoints+1)

		var latOffset, lonOffset float64
		switch routeType {
		case "scenic":
			wobble := 0.01 * (float64(i%2) - 0.5)
			latOffset = (end.Latitude-start.Latitude)*progress + wobble
			lonOffset = (end.Longitude-start.Longitude)*progress + wobble
		case "fastest":
			latOffset = (end.Latitude - start.Latitude) * progress
			lonOffset = (end.Longitude - start.Longitude) * progress
		default:
			latOffset = (end.Latitude-start.Latitude)*progress + 0.005*(1-progress)
			lonOffset = (end.Longitude-start.Longitude)*progress - 0.005*progress
		}

		waypoints = append(waypoints, models.Location{
			Latitude:  start.Latitude + latOffset,
			Longitude: start.Longitude + lonOffset,
			Name:      fmt.Sprintf("Waypoint %d", i),
		})
	}
	return waypoints
}

// midpoint returns a location at the given fraction of the start-end
// segment.
func midpoint(start, end models.Location, fraction, latShift, lonShift float64, name string) models.Location {
	return models.Location{
		Latitude:  start.Latitude + (end.Latitude-start.Latitude)*fraction + latShift,
		Longitude: start.Longitude + (end.Longitude-start.Longitude)*fraction + lonShift,
		Name:      name,
	}
}

// PlanRouteOptions builds the three fixed route variants between two
// locations, each with waypoints and suggested challenges.
func PlanRouteOptions(start, end models.Location) []RouteOption {
	return []RouteOption{
		{
			Type:        "fastest",
			Distance:    120.5,
			Duration:    90,
			Description: "Highway route via main roads",
			Waypoints:   GenerateWaypoints("fastest", start, end, 3),
			Color:       "#FF6B6B",
			Challenges: []SuggestedActivity{
				{
					Type:        "photo",
					Title:       "Highway Milestone",
					Description: "Take a photo at the highway rest stop",
					Location:    midpoint(start, end, 0.5, 0, 0, "Highway Rest Stop"),
					Points:      15,
				},
			},
		},
		{
			Type:        "scenic",
			Distance:    145.2,
			Duration:    120,
			Description: "Scenic route through countryside",
			Waypoints:   GenerateWaypoints("scenic", start, end, 3),
			Color:       "#4ECDC4",
			Challenges: []SuggestedActivity{
				{
					Type:        "photo",
					Title:       "Scenic Viewpoint",
					Description: "Capture the beautiful countryside view",
					Location:    midpoint(start, end, 0.3, 0.01, 0.01, "Scenic Overlook"),
					Points:      25,
				},
				{
					Type:        "food",
					Title:       "Local Delicacy",
					Description: "Try a local specialty at the roadside diner",
					Location:    midpoint(start, end, 0.7, 0, 0, "Country Diner"),
					Points:      20,
				},
			},
		},
		{
			Type:        "cheapest",
			Distance:    135.8,
			Duration:    105,
			Description: "Budget-friendly route avoiding tolls",
			Waypoints:   GenerateWaypoints("cheapest", start, end, 3),
			Color:       "#FFD93D",
			Challenges: []SuggestedActivity{
				{
					Type:        "location",
					Title:       "Hidden Gem",
					Description: "Discover the local market",
					Location:    midpoint(start, end, 0.6, 0, -0.005, "Local Market"),
					Points:      30,
				},
			},
		},
	}
}

// PointOfInterest is a synthetic map overlay entry.
type PointOfInterest struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	Name               string          `json:"name"`
	Location           models.Location `json:"location"`
	Description        string          `json:"description"`
	Rating             float64         `json:"rating"`
	ChallengeAvailable bool            `json:"challenge_available"`
}

var poiTypes = []string{"restaurant", "landmark", "viewpoint", "gas_station", "hotel"}

// PointsOfInterest fabricates a ring of POIs around a coordinate.
func PointsOfInterest(lat, lon float64) []PointOfInterest {
	pois := make([]PointOfInterest, 0, len(poiTypes))
	for i, poiType := range poiTypes {
		latOffset := float64(i-2) * 0.02
		lonOffset := (float64(i%2) - 0.5) * 0.02
		label := fmt.Sprintf("%s %d", titleCase(poiType), i+1)

		pois = append(pois, PointOfInterest{
			ID:   fmt.Sprintf("poi_%d", i),
			Type: poiType,
			Name: label,
			Location: models.Location{
				Latitude:  lat + latOffset,
				Longitude: lon + lonOffset,
				Name:      label,
			},
			Description:        fmt.Sprintf("Interesting %s near your route", strings.ReplaceAll(poiType, "_", " ")),
			Rating:             4.0 + float64(i)*0.2,
			ChallengeAvailable: i%2 == 0,
		})
	}
	return pois
}

// MapChallenge is a synthetic nearby challenge marker.
type MapChallenge struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    models.Location `json:"location"`
	Points      int             `json:"points"`
	Difficulty  string          `json:"difficulty"`
	Completed   bool            `json:"completed"`
}

var mapChallengeTypes = []string{"photo", "food", "location", "hidden_gem"}

// NearbyChallenges fabricates challenge markers around a coordinate.
func NearbyChallenges(lat, lon float64) []MapChallenge {
	difficulties := []string{"easy", "medium", "hard"}
	challenges := make([]MapChallenge, 0, len(mapChallengeTypes))
	for i, challengeType := range mapChallengeTypes {
		latOffset := (float64(i) - 1.5) * 0.015
		lonOffset := (float64(i%2) - 0.5) * 0.015

		challenges = append(challenges, MapChallenge{
			ID:          fmt.Sprintf("map_challenge_%d", i),
			Type:        challengeType,
			Title:       fmt.Sprintf("%s Challenge", titleCase(challengeType)),
			Description: fmt.Sprintf("Complete this %s challenge for rewards!", challengeType),
			Location: models.Location{
				Latitude:  lat + latOffset,
				Longitude: lon + lonOffset,
				Name:      fmt.Sprintf("%s Spot", titleCase(challengeType)),
			},
			Points:     15 + i*5,
			Difficulty: difficulties[i%3],
		})
	}
	return challenges
}

var suggestedPathNames = map[string][]string{
	"scenic":      {"Scenic Ridge Loop", "Lake Panorama Route", "Forest Canopy Trail"},
	"adventurous": {"Rocky Scramble", "Canyon Descent", "Peak Ascent Express"},
	"shortest":    {"Direct City Link", "Quick Park Connector", "Straightline Stroll"},
}

var suggestedPathDifficulties = map[string][]string{
	"scenic":      {"Medium", "Hard", "Medium"},
	"adventurous": {"Hard", "Hard", "Medium"},
	"shortest":    {"Easy", "Easy", "Medium"},
}

var starterTasks = []models.Task{
	{TaskDescription: "Reach the featured viewpoint", RewardPoints: 20},
	{TaskDescription: "Take a photo of landmark", RewardPoints: 25},
}

// SuggestPaths fabricates paths around a center matching the requested
// goal, persists them as ai_suggested, and seeds each with two starter
// tasks.
func SuggestPaths(db *gorm.DB, goal string, center models.Location, count int) ([]models.Path, error) {
	if count < 1 {
		count = 1
	}
	if count > 5 {
		count = 5
	}

	goalKey := strings.ToLower(goal)
	names, ok := suggestedPathNames[goalKey]
	if !ok {
		names = []string{"Explorer Path A", "Explorer Path B", "Explorer Path C"}
	}
	diffs, ok := suggestedPathDifficulties[goalKey]
	if !ok {
		diffs = []string{"Easy", "Medium", "Hard"}
	}

	paths := make([]models.Path, 0, count)
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			latOff := float64(i-1) * 0.02
			lonOff := (float64(i%2) - 0.5) * 0.02

			path := models.Path{
				Name: names[i%len(names)],
				StartPoint: models.Location{
					Latitude:  center.Latitude + latOff,
					Longitude: center.Longitude + lonOff,
					Name:      fmt.Sprintf("Start %d", i+1),
				},
				EndPoint: models.Location{
					Latitude:  center.Latitude + latOff + 0.03,
					Longitude: center.Longitude + lonOff + 0.03,
					Name:      fmt.Sprintf("End %d", i+1),
				},
				Difficulty:  diffs[i%len(diffs)],
				AISuggested: true,
			}
			if err := tx.Create(&path).Error; err != nil {
				return err
			}

			for _, proto := range starterTasks {
				task := models.Task{
					PathID:          path.ID,
					TaskDescription: proto.TaskDescription,
					RewardPoints:    proto.RewardPoints,
					Status:          models.TaskNotStarted,
				}
				if err := tx.Create(&task).Error; err != nil {
					return err
				}
			}

			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// titleCase uppercases each underscore-separated word.
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
