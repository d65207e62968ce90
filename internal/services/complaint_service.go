package services

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"civicBack/internal/models"
	"civicBack/internal/workflow"
)

// ComplaintService owns complaint intake and the routing/completion side of
// the workflow. Every state change goes through the store's compare-and-swap
// operations, so a stale precondition fails without mutating the record.
type ComplaintService struct {
	ComplaintRepo ComplaintStore
	UserRepo      UserStore
	VendorRepo    VendorStore
	Cache         *redis.Client
}

func (s *ComplaintService) CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	if strings.TrimSpace(c.Description) == "" || strings.TrimSpace(c.Location) == "" {
		return models.Complaint{}, models.ErrMissingFields
	}
	if c.CategoryID == 0 {
		c.CategoryID = models.CategoryOther
	}
	return s.ComplaintRepo.CreateComplaint(ctx, c)
}

func (s *ComplaintService) GetComplaintByID(ctx context.Context, id int) (models.Complaint, error) {
	return s.ComplaintRepo.GetComplaintByID(ctx, id)
}

func (s *ComplaintService) GetAllComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.ComplaintRepo.GetAllComplaints(ctx)
}

func (s *ComplaintService) GetComplaintsByUser(ctx context.Context, userID int) ([]models.Complaint, error) {
	return s.ComplaintRepo.GetComplaintsByUser(ctx, userID)
}

func (s *ComplaintService) GetComplaintsByOfficer(ctx context.Context, officerID int) ([]models.Complaint, error) {
	return s.ComplaintRepo.GetComplaintsByOfficer(ctx, officerID)
}

// RouteToGovernment puts a Pending complaint on the government path. With an
// officer the complaint starts immediately; without one it waits in Routed.
func (s *ComplaintService) RouteToGovernment(ctx context.Context, complaintID int, officerID *int) error {
	if officerID != nil {
		if err := s.checkOfficer(ctx, *officerID); err != nil {
			return err
		}
	}
	return s.ComplaintRepo.RouteToGovernment(ctx, complaintID, officerID)
}

// RouteToPrivate opens a Pending complaint to the vendor marketplace.
func (s *ComplaintService) RouteToPrivate(ctx context.Context, complaintID int) error {
	if err := s.ComplaintRepo.RouteToPrivate(ctx, complaintID); err != nil {
		return err
	}
	s.invalidateOpenJobs(ctx)
	return nil
}

// AssignOfficer attaches an officer to a Routed complaint.
func (s *ComplaintService) AssignOfficer(ctx context.Context, complaintID, officerID int) error {
	if err := s.checkOfficer(ctx, officerID); err != nil {
		return err
	}
	return s.ComplaintRepo.AssignOfficer(ctx, complaintID, officerID)
}

// AssignVendorDirect is the admin override that hands a Pending complaint to
// a vendor without the marketplace or the payment gate. The two-path policy
// is deliberate: direct assignments never carry a payment record.
func (s *ComplaintService) AssignVendorDirect(ctx context.Context, complaintID, vendorID int) error {
	if _, err := s.VendorRepo.GetVendorByUserID(ctx, vendorID); err != nil {
		return err
	}
	return s.ComplaintRepo.AssignVendorDirect(ctx, complaintID, vendorID)
}

// SubmitCompletion resolves a complaint from Routed or In Progress. On the
// government path resolution notes are required. The actor must be the
// assigned officer or selected vendor unless they are an admin.
func (s *ComplaintService) SubmitCompletion(ctx context.Context, complaintID int, actor Actor, notes string) error {
	c, err := s.ComplaintRepo.GetComplaintByID(ctx, complaintID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin {
		switch c.ResolutionType {
		case workflow.PathGovernment:
			if c.AssignedOfficer == nil || *c.AssignedOfficer != actor.ID {
				return models.ErrPermissionDenied
			}
		case workflow.PathPrivate:
			if c.SelectedVendor == nil || *c.SelectedVendor != actor.ID {
				return models.ErrPermissionDenied
			}
		}
	}
	if c.ResolutionType == workflow.PathGovernment && strings.TrimSpace(notes) == "" {
		return models.ErrMissingFields
	}
	return s.ComplaintRepo.MarkResolved(ctx, complaintID, notes)
}

func (s *ComplaintService) checkOfficer(ctx context.Context, officerID int) error {
	user, err := s.UserRepo.GetUserByID(ctx, officerID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleOfficer {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *ComplaintService) invalidateOpenJobs(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Del(ctx, openJobsCacheKey)
	}
}
