package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"civicBack/internal/models"
)

// openJobsCacheKey caches the marketplace listing. The listing changes only
// when a complaint enters or leaves Awaiting Quotes, so writers on those
// paths drop the key and a short TTL bounds staleness for everything else.
const (
	openJobsCacheKey = "marketplace:open_jobs"
	openJobsCacheTTL = 30 * time.Second
)

// QuotationService is the marketplace plus the approval and payment gate.
type QuotationService struct {
	QuotationRepo QuotationStore
	ComplaintRepo ComplaintStore
	VendorRepo    VendorStore
	Cache         *redis.Client
}

// ListOpenJobs returns the complaints open for bidding. Only verified vendors
// may see the marketplace; an unverified vendor gets a permission error, not
// an empty list, so "no jobs" and "not allowed" stay distinguishable.
func (s *QuotationService) ListOpenJobs(ctx context.Context, vendorUserID int) ([]models.Complaint, error) {
	if err := s.checkVerifiedVendor(ctx, vendorUserID); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, openJobsCacheKey).Result(); err == nil {
			var jobs []models.Complaint
			if json.Unmarshal([]byte(raw), &jobs) == nil {
				return jobs, nil
			}
		}
	}

	jobs, err := s.ComplaintRepo.ListOpenForQuotes(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(jobs); err == nil {
			s.Cache.Set(ctx, openJobsCacheKey, raw, openJobsCacheTTL)
		}
	}
	return jobs, nil
}

// SubmitQuote records a vendor's bid on a complaint that is Awaiting Quotes.
// Nothing stops a vendor from quoting the same complaint twice; approval
// handles the duplicates.
func (s *QuotationService) SubmitQuote(ctx context.Context, vendorUserID, complaintID int, price float64, estimatedTime string) (models.Quotation, error) {
	if price < 0 {
		return models.Quotation{}, models.ErrInvalidPrice
	}
	if err := s.checkVerifiedVendor(ctx, vendorUserID); err != nil {
		return models.Quotation{}, err
	}
	return s.QuotationRepo.CreateQuotation(ctx, models.Quotation{
		ComplaintID:   complaintID,
		VendorID:      vendorUserID,
		Price:         price,
		EstimatedTime: estimatedTime,
	})
}

// GetQuotesForComplaint returns every bid for a complaint in submission order
// so the citizen or admin can compare them.
func (s *QuotationService) GetQuotesForComplaint(ctx context.Context, complaintID int) ([]models.Quotation, error) {
	if _, err := s.ComplaintRepo.GetComplaintByID(ctx, complaintID); err != nil {
		return nil, err
	}
	return s.QuotationRepo.GetQuotationsByComplaint(ctx, complaintID)
}

func (s *QuotationService) GetQuotesByVendor(ctx context.Context, vendorUserID int) ([]models.Quotation, error) {
	return s.QuotationRepo.GetQuotationsByVendor(ctx, vendorUserID)
}

// ApproveQuotation selects the winning vendor. The store runs the whole
// selection as one transaction; of two racing approvals exactly one wins and
// the other fails the Awaiting Quotes guard.
func (s *QuotationService) ApproveQuotation(ctx context.Context, complaintID, vendorID int) error {
	if err := s.QuotationRepo.ApproveQuotation(ctx, complaintID, vendorID); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Del(ctx, openJobsCacheKey)
	}
	return nil
}

// ConfirmPayment records payment for an approved quotation and lets the
// vendor start work.
func (s *QuotationService) ConfirmPayment(ctx context.Context, complaintID int) error {
	return s.ComplaintRepo.ConfirmPayment(ctx, complaintID)
}

// VendorStats is the reporting view for a vendor dashboard.
func (s *QuotationService) VendorStats(ctx context.Context, vendorUserID int) (models.VendorStats, error) {
	return s.QuotationRepo.StatsByVendor(ctx, vendorUserID)
}

func (s *QuotationService) checkVerifiedVendor(ctx context.Context, vendorUserID int) error {
	vendor, err := s.VendorRepo.GetVendorByUserID(ctx, vendorUserID)
	if errors.Is(err, models.ErrVendorNotFound) {
		return models.ErrVendorNotVerified
	}
	if err != nil {
		return err
	}
	if !vendor.Verified {
		return models.ErrVendorNotVerified
	}
	return nil
}
