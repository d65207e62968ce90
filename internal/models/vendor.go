package models

import "time"

// Vendor is the marketplace profile tied 1:1 to a user account. Verified gates
// marketplace participation; rating is maintained by feedback aggregation.
type Vendor struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	BusinessName string    `json:"business_name"`
	ServiceType  string    `json:"service_type"`
	Verified     bool      `json:"verified"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`

	// Contact fields from the joined user row, for the admin verification list.
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
