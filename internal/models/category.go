package models

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Seeded category ids. Complaints without a recognized category fall back to
// CategoryOther.
const (
	CategoryRoadDamage   = 1
	CategoryGarbage      = 2
	CategoryStreetLight  = 3
	CategoryWaterLeakage = 4
	CategoryDrainage     = 5
	CategoryOther        = 6
)
