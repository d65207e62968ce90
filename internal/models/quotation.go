package models

import "time"

// Quotation is a vendor's priced bid on a privately routed complaint. A vendor
// may submit several quotations for the same complaint; approval rejects all
// of the complaint's quotations and approves the vendor's most recent one.
type Quotation struct {
	ID            int       `json:"id"`
	ComplaintID   int       `json:"complaint_id"`
	VendorID      int       `json:"vendor_id"`
	Price         float64   `json:"price"`
	EstimatedTime string    `json:"estimated_time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`

	// Vendor display fields for the citizen/admin comparison view.
	BusinessName string  `json:"business_name,omitempty"`
	VendorName   string  `json:"vendor_name,omitempty"`
	VendorRating float64 `json:"vendor_rating,omitempty"`

	// Complaint fields for the vendor's own listing.
	Description     string `json:"description,omitempty"`
	Location        string `json:"location,omitempty"`
	ComplaintStatus string `json:"complaint_status,omitempty"`
}

const (
	QuoteStatusPending  = "Pending"
	QuoteStatusApproved = "Approved"
	QuoteStatusRejected = "Rejected"
)

// VendorStats is the reporting view for a vendor dashboard.
type VendorStats struct {
	PendingQuotes int     `json:"pending_quotes"`
	ResolvedJobs  int     `json:"resolved_jobs"`
	TotalEarned   float64 `json:"total_earned"`
}
