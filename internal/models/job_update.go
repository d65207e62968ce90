package models

import "time"

// JobUpdate is a progress note a vendor posts against a complaint they work on.
type JobUpdate struct {
	ID          int       `json:"id"`
	ComplaintID int       `json:"complaint_id"`
	VendorID    int       `json:"vendor_id"`
	Message     string    `json:"message"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	VendorName   string `json:"vendor_name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}
