package services

import (
	"context"

	"civicBack/internal/models"
)

// Store interfaces consumed by the services. The repositories package holds
// the MySQL implementations; tests substitute in-memory fakes.

type ComplaintStore interface {
	CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error)
	GetComplaintByID(ctx context.Context, id int) (models.Complaint, error)
	GetAllComplaints(ctx context.Context) ([]models.Complaint, error)
	GetComplaintsByUser(ctx context.Context, userID int) ([]models.Complaint, error)
	GetComplaintsByOfficer(ctx context.Context, officerID int) ([]models.Complaint, error)
	ListOpenForQuotes(ctx context.Context) ([]models.Complaint, error)
	RouteToGovernment(ctx context.Context, complaintID int, officerID *int) error
	RouteToPrivate(ctx context.Context, complaintID int) error
	AssignOfficer(ctx context.Context, complaintID, officerID int) error
	AssignVendorDirect(ctx context.Context, complaintID, vendorID int) error
	ConfirmPayment(ctx context.Context, complaintID int) error
	MarkResolved(ctx context.Context, complaintID int, notes string) error
}

type QuotationStore interface {
	CreateQuotation(ctx context.Context, q models.Quotation) (models.Quotation, error)
	GetQuotationsByComplaint(ctx context.Context, complaintID int) ([]models.Quotation, error)
	GetQuotationsByVendor(ctx context.Context, vendorID int) ([]models.Quotation, error)
	ApproveQuotation(ctx context.Context, complaintID, vendorID int) error
	StatsByVendor(ctx context.Context, vendorID int) (models.VendorStats, error)
}

type VendorStore interface {
	CreateVendor(ctx context.Context, v models.Vendor) (models.Vendor, error)
	GetVendorByUserID(ctx context.Context, userID int) (models.Vendor, error)
	GetUnverifiedVendors(ctx context.Context) ([]models.Vendor, error)
	VerifyVendor(ctx context.Context, vendorID int) error
	RecalculateRating(ctx context.Context, vendorUserID int) error
}

type FeedbackStore interface {
	CreateFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error)
	GetFeedbackByComplaint(ctx context.Context, complaintID int) (models.Feedback, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUsersByRole(ctx context.Context, role string) ([]models.User, error)
}

type JobUpdateStore interface {
	CreateJobUpdate(ctx context.Context, ju models.JobUpdate) (models.JobUpdate, error)
	GetJobUpdatesByComplaint(ctx context.Context, complaintID int) ([]models.JobUpdate, error)
}

// Actor identifies the authenticated caller of a workflow operation. Guards
// receive it explicitly instead of reading it from shared request state.
type Actor struct {
	ID   int
	Role string
}
