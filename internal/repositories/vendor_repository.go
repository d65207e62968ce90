package repositories

import (
	"context"
	"database/sql"
	"errors"

	"civicBack/internal/models"
	"civicBack/internal/workflow"
)

type VendorRepository struct {
	DB *sql.DB
}

func (r *VendorRepository) CreateVendor(ctx context.Context, v models.Vendor) (models.Vendor, error) {
	query := `INSERT INTO vendors (user_id, business_name, service_type, verified, rating) VALUES (?, ?, ?, false, 0)`
	res, err := r.DB.ExecContext(ctx, query, v.UserID, v.BusinessName, v.ServiceType)
	if err != nil {
		return models.Vendor{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Vendor{}, err
	}
	v.ID = int(id)
	v.Verified = false
	v.Rating = 0
	return v, nil
}

func (r *VendorRepository) GetVendorByUserID(ctx context.Context, userID int) (models.Vendor, error) {
	var v models.Vendor
	query := `SELECT id, user_id, business_name, service_type, verified, rating, created_at FROM vendors WHERE user_id = ?`
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&v.ID, &v.UserID, &v.BusinessName, &v.ServiceType, &v.Verified, &v.Rating, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vendor{}, models.ErrVendorNotFound
	}
	if err != nil {
		return models.Vendor{}, err
	}
	return v, nil
}

// GetUnverifiedVendors lists profiles pending admin review with user contact data.
func (r *VendorRepository) GetUnverifiedVendors(ctx context.Context) ([]models.Vendor, error) {
	query := `SELECT v.id, v.user_id, v.business_name, v.service_type, v.verified, v.rating, v.created_at,
                     u.name, u.email, u.phone
              FROM vendors v
              JOIN users u ON v.user_id = u.id
              WHERE v.verified = false`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vendors := []models.Vendor{}
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.UserID, &v.BusinessName, &v.ServiceType, &v.Verified, &v.Rating, &v.CreatedAt,
			&v.Name, &v.Email, &v.Phone); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepository) VerifyVendor(ctx context.Context, vendorID int) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE vendors SET verified = true WHERE id = ?`, vendorID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrVendorNotFound
	}
	return nil
}

// RecalculateRating refreshes the vendor's aggregate rating from feedback on
// complaints the vendor resolved.
func (r *VendorRepository) RecalculateRating(ctx context.Context, vendorUserID int) error {
	query := `UPDATE vendors v SET v.rating = COALESCE((
                  SELECT AVG(f.rating)
                  FROM feedback f
                  JOIN complaints c ON f.complaint_id = c.id
                  WHERE c.selected_vendor_id = ? AND c.status = ?
              ), 0)
              WHERE v.user_id = ?`
	_, err := r.DB.ExecContext(ctx, query, vendorUserID, workflow.StatusResolved, vendorUserID)
	return err
}
