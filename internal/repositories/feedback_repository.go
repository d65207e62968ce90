package repositories

import (
	"context"
	"database/sql"
	"errors"

	"civicBack/internal/models"
	"civicBack/internal/workflow"
)

type FeedbackRepository struct {
	DB *sql.DB
}

// CreateFeedback inserts the single terminal rating for a complaint. The
// insert carries its own guards: the complaint must be Resolved and must not
// already have feedback, checked in the same statement so two racing submits
// cannot both land.
func (r *FeedbackRepository) CreateFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	query := `INSERT INTO feedback (complaint_id, user_id, rating, comment)
              SELECT c.id, ?, ?, ? FROM complaints c
              WHERE c.id = ? AND c.status = ?
                AND NOT EXISTS (SELECT 1 FROM feedback f WHERE f.complaint_id = c.id)`
	res, err := r.DB.ExecContext(ctx, query,
		f.UserID, f.Rating, f.Comment, f.ComplaintID, workflow.StatusResolved)
	if err != nil {
		return models.Feedback{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Feedback{}, err
	}
	if rows == 0 {
		return models.Feedback{}, r.classifyInsertMiss(ctx, f.ComplaintID)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Feedback{}, err
	}
	f.ID = int(id)
	return f, nil
}

func (r *FeedbackRepository) GetFeedbackByComplaint(ctx context.Context, complaintID int) (models.Feedback, error) {
	var f models.Feedback
	query := `SELECT id, complaint_id, user_id, rating, comment, created_at FROM feedback WHERE complaint_id = ?`
	err := r.DB.QueryRowContext(ctx, query, complaintID).Scan(
		&f.ID, &f.ComplaintID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Feedback{}, models.ErrFeedbackNotFound
	}
	if err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}

func (r *FeedbackRepository) classifyInsertMiss(ctx context.Context, complaintID int) error {
	var status string
	err := r.DB.QueryRowContext(ctx, `SELECT status FROM complaints WHERE id = ?`, complaintID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrComplaintNotFound
	}
	if err != nil {
		return err
	}
	if status != workflow.StatusResolved {
		return models.ErrInvalidTransition
	}
	return models.ErrFeedbackExists
}
