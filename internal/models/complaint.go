package models

import "time"

// Complaint is the workflow-owned record. Status, resolution path, officer,
// vendor and payment fields are mutated only through the workflow operations;
// handlers and repositories never write them directly.
type Complaint struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	CategoryID      int        `json:"category_id"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	ImagePath       *string    `json:"image_path,omitempty"`
	Status          string     `json:"status"`
	ResolutionType  string     `json:"resolution_type"`
	AssignedOfficer *int       `json:"assigned_officer_id,omitempty"`
	SelectedVendor  *int       `json:"selected_vendor_id,omitempty"`
	ResolutionNotes *string    `json:"resolution_notes,omitempty"`
	PaymentStatus   string     `json:"payment_status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`

	// Display fields populated by joined reads.
	CitizenName  string  `json:"citizen_name,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	OfficerName  *string `json:"officer_name,omitempty"`
}

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)
