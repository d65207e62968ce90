package services

import (
	"context"
	"errors"
	"strings"

	"civicBack/internal/models"
)

// VendorService manages marketplace profiles and the job updates a selected
// vendor posts while working a complaint.
type VendorService struct {
	VendorRepo    VendorStore
	ComplaintRepo ComplaintStore
	JobUpdateRepo JobUpdateStore
}

// RegisterVendor creates an unverified profile tied to the acting user. An
// administrator verifies it before the vendor can bid.
func (s *VendorService) RegisterVendor(ctx context.Context, userID int, businessName, serviceType string) (models.Vendor, error) {
	if strings.TrimSpace(businessName) == "" || strings.TrimSpace(serviceType) == "" {
		return models.Vendor{}, models.ErrMissingFields
	}
	_, err := s.VendorRepo.GetVendorByUserID(ctx, userID)
	if err == nil {
		return models.Vendor{}, models.ErrVendorExists
	}
	if !errors.Is(err, models.ErrVendorNotFound) {
		return models.Vendor{}, err
	}
	return s.VendorRepo.CreateVendor(ctx, models.Vendor{
		UserID:       userID,
		BusinessName: businessName,
		ServiceType:  serviceType,
	})
}

func (s *VendorService) GetVendorByUserID(ctx context.Context, userID int) (models.Vendor, error) {
	return s.VendorRepo.GetVendorByUserID(ctx, userID)
}

func (s *VendorService) GetUnverifiedVendors(ctx context.Context) ([]models.Vendor, error) {
	return s.VendorRepo.GetUnverifiedVendors(ctx)
}

func (s *VendorService) VerifyVendor(ctx context.Context, vendorID int) error {
	return s.VendorRepo.VerifyVendor(ctx, vendorID)
}

// PostJobUpdate records a progress note. Only the vendor selected for the
// complaint may post against it.
func (s *VendorService) PostJobUpdate(ctx context.Context, vendorUserID, complaintID int, message string, imageURL *string) (models.JobUpdate, error) {
	if strings.TrimSpace(message) == "" {
		return models.JobUpdate{}, models.ErrMissingFields
	}
	c, err := s.ComplaintRepo.GetComplaintByID(ctx, complaintID)
	if err != nil {
		return models.JobUpdate{}, err
	}
	if c.SelectedVendor == nil || *c.SelectedVendor != vendorUserID {
		return models.JobUpdate{}, models.ErrPermissionDenied
	}
	return s.JobUpdateRepo.CreateJobUpdate(ctx, models.JobUpdate{
		ComplaintID: complaintID,
		VendorID:    vendorUserID,
		Message:     message,
		ImageURL:    imageURL,
	})
}

func (s *VendorService) GetJobUpdates(ctx context.Context, complaintID int) ([]models.JobUpdate, error) {
	return s.JobUpdateRepo.GetJobUpdatesByComplaint(ctx, complaintID)
}
