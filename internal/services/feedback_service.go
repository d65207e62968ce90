package services

import (
	"context"

	"civicBack/internal/models"
	"civicBack/internal/workflow"
)

// FeedbackService records the one terminal citizen rating per complaint and
// keeps vendor aggregate ratings in step with it.
type FeedbackService struct {
	FeedbackRepo  FeedbackStore
	ComplaintRepo ComplaintStore
	VendorRepo    VendorStore
}

// SubmitFeedback validates the rating before touching the store; the store
// enforces "complaint is Resolved" and "no feedback yet" atomically.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, complaintID, userID, rating int, comment string) (models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return models.Feedback{}, models.ErrInvalidRating
	}
	fb, err := s.FeedbackRepo.CreateFeedback(ctx, models.Feedback{
		ComplaintID: complaintID,
		UserID:      userID,
		Rating:      rating,
		Comment:     comment,
	})
	if err != nil {
		return models.Feedback{}, err
	}

	c, err := s.ComplaintRepo.GetComplaintByID(ctx, complaintID)
	if err != nil {
		return fb, nil
	}
	if c.ResolutionType == workflow.PathPrivate && c.SelectedVendor != nil {
		// Rating refresh failures do not undo the feedback.
		_ = s.VendorRepo.RecalculateRating(ctx, *c.SelectedVendor)
	}
	return fb, nil
}

func (s *FeedbackService) GetFeedbackByComplaint(ctx context.Context, complaintID int) (models.Feedback, error) {
	return s.FeedbackRepo.GetFeedbackByComplaint(ctx, complaintID)
}
