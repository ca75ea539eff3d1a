package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Regions lists the recipe regions offered by the browser, "all" meaning no filter.
var Regions = []string{"all", "Pan-India", "North India", "South India", "Gujarat"}

type Recipe struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Ingredients  json.RawMessage `json:"ingredients"`
	Instructions json.RawMessage `json:"instructions"`
	Region       string          `json:"region"`
	Category     string          `json:"category"`
	CookingTime  int             `json:"cooking_time"`
	Difficulty   string          `json:"difficulty"`
	IsLowOil     bool            `json:"is_low_oil"`
	CreatedAt    time.Time       `json:"created_at"`
}
