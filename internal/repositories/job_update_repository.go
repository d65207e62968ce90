package repositories

import (
	"context"
	"database/sql"

	"civicBack/internal/models"
)

type JobUpdateRepository struct {
	DB *sql.DB
}

func (r *JobUpdateRepository) CreateJobUpdate(ctx context.Context, ju models.JobUpdate) (models.JobUpdate, error) {
	query := `INSERT INTO job_updates (complaint_id, vendor_id, message, image_url) VALUES (?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query, ju.ComplaintID, ju.VendorID, ju.Message, ju.ImageURL)
	if err != nil {
		return models.JobUpdate{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.JobUpdate{}, err
	}
	ju.ID = int(id)
	return ju, nil
}

func (r *JobUpdateRepository) GetJobUpdatesByComplaint(ctx context.Context, complaintID int) ([]models.JobUpdate, error) {
	query := `SELECT ju.id, ju.complaint_id, ju.vendor_id, ju.message, ju.image_url, ju.created_at,
                     u.name, v.business_name
              FROM job_updates ju
              JOIN users u ON ju.vendor_id = u.id
              JOIN vendors v ON u.id = v.user_id
              WHERE ju.complaint_id = ?
              ORDER BY ju.created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := []models.JobUpdate{}
	for rows.Next() {
		var ju models.JobUpdate
		if err := rows.Scan(&ju.ID, &ju.ComplaintID, &ju.VendorID, &ju.Message, &ju.ImageURL, &ju.CreatedAt,
			&ju.VendorName, &ju.BusinessName); err != nil {
			return nil, err
		}
		updates = append(updates, ju)
	}
	return updates, rows.Err()
}
