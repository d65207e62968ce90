package models

import "time"

// Feedback is the one terminal citizen rating per resolved complaint.
type Feedback struct {
	ID          int       `json:"id"`
	ComplaintID int       `json:"complaint_id"`
	UserID      int       `json:"user_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}
