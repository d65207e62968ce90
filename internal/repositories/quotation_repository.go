package repositories

import (
	"context"
	"database/sql"
	"errors"

	"civicBack/internal/models"
	"civicBack/internal/workflow"
)

type QuotationRepository struct {
	DB *sql.DB
}

// CreateQuotation inserts a pending bid. The insert is guarded by the
// complaint's status in the same statement, so a bid against a complaint that
// left Awaiting Quotes never lands.
func (r *QuotationRepository) CreateQuotation(ctx context.Context, q models.Quotation) (models.Quotation, error) {
	query := `INSERT INTO quotations (complaint_id, vendor_id, price, estimated_time, status)
              SELECT c.id, ?, ?, ?, ? FROM complaints c WHERE c.id = ? AND c.status = ?`
	res, err := r.DB.ExecContext(ctx, query,
		q.VendorID, q.Price, q.EstimatedTime, models.QuoteStatusPending,
		q.ComplaintID, workflow.StatusAwaitingQuotes)
	if err != nil {
		return models.Quotation{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Quotation{}, err
	}
	if rows == 0 {
		var one int
		probe := r.DB.QueryRowContext(ctx, `SELECT 1 FROM complaints WHERE id = ?`, q.ComplaintID).Scan(&one)
		if errors.Is(probe, sql.ErrNoRows) {
			return models.Quotation{}, models.ErrComplaintNotFound
		}
		if probe != nil {
			return models.Quotation{}, probe
		}
		return models.Quotation{}, models.ErrInvalidTransition
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Quotation{}, err
	}
	q.ID = int(id)
	q.Status = models.QuoteStatusPending
	return q, nil
}

// GetQuotationsByComplaint returns every bid for a complaint in submission
// order, joined with vendor display data for the comparison view.
func (r *QuotationRepository) GetQuotationsByComplaint(ctx context.Context, complaintID int) ([]models.Quotation, error) {
	query := `SELECT q.id, q.complaint_id, q.vendor_id, q.price, q.estimated_time, q.status, q.created_at,
                     v.business_name, v.rating, u.name
              FROM quotations q
              JOIN vendors v ON q.vendor_id = v.user_id
              JOIN users u ON v.user_id = u.id
              WHERE q.complaint_id = ?
              ORDER BY q.id ASC`
	rows, err := r.DB.QueryContext(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []models.Quotation{}
	for rows.Next() {
		var q models.Quotation
		if err := rows.Scan(&q.ID, &q.ComplaintID, &q.VendorID, &q.Price, &q.EstimatedTime, &q.Status, &q.CreatedAt,
			&q.BusinessName, &q.VendorRating, &q.VendorName); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// GetQuotationsByVendor returns a vendor's own bids joined with complaint data.
func (r *QuotationRepository) GetQuotationsByVendor(ctx context.Context, vendorID int) ([]models.Quotation, error) {
	query := `SELECT q.id, q.complaint_id, q.vendor_id, q.price, q.estimated_time, q.status, q.created_at,
                     c.description, c.location, c.status
              FROM quotations q
              JOIN complaints c ON q.complaint_id = c.id
              WHERE q.vendor_id = ?
              ORDER BY q.id DESC`
	rows, err := r.DB.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []models.Quotation{}
	for rows.Next() {
		var q models.Quotation
		if err := rows.Scan(&q.ID, &q.ComplaintID, &q.VendorID, &q.Price, &q.EstimatedTime, &q.Status, &q.CreatedAt,
			&q.Description, &q.Location, &q.ComplaintStatus); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// ApproveQuotation selects a winning vendor in one transaction: the complaint
// leaves Awaiting Quotes (the CAS both guards and serializes racing
// approvals), every bid for the complaint is rejected, and the chosen
// vendor's latest bid is approved. A vendor who never quoted rolls the whole
// thing back.
func (r *QuotationRepository) ApproveQuotation(ctx context.Context, complaintID, vendorID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := workflow.Apply(ctx, tx, complaintID, workflow.StatusAwaitingQuotes, workflow.StatusAwaitingPayment); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		var one int
		probe := tx.QueryRowContext(ctx, `SELECT 1 FROM complaints WHERE id = ?`, complaintID).Scan(&one)
		if errors.Is(probe, sql.ErrNoRows) {
			return models.ErrComplaintNotFound
		}
		if probe != nil {
			return probe
		}
		return models.ErrInvalidTransition
	}

	if _, err := tx.ExecContext(ctx, `UPDATE quotations SET status = ? WHERE complaint_id = ?`,
		models.QuoteStatusRejected, complaintID); err != nil {
		return err
	}

	// Only the vendor's most recent bid wins; earlier ones stay rejected so
	// at most one quotation per complaint is ever approved.
	res, err := tx.ExecContext(ctx, `UPDATE quotations SET status = ? WHERE complaint_id = ? AND vendor_id = ? ORDER BY id DESC LIMIT 1`,
		models.QuoteStatusApproved, complaintID, vendorID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrQuotationNotFound
	}

	if _, err := tx.ExecContext(ctx, `UPDATE complaints SET selected_vendor_id = ? WHERE id = ?`,
		vendorID, complaintID); err != nil {
		return err
	}
	return tx.Commit()
}

// StatsByVendor builds the vendor dashboard numbers.
func (r *QuotationRepository) StatsByVendor(ctx context.Context, vendorID int) (models.VendorStats, error) {
	var stats models.VendorStats
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotations WHERE vendor_id = ? AND status = ?`,
		vendorID, models.QuoteStatusPending).Scan(&stats.PendingQuotes)
	if err != nil {
		return models.VendorStats{}, err
	}
	err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints WHERE selected_vendor_id = ? AND status = ?`,
		vendorID, workflow.StatusResolved).Scan(&stats.ResolvedJobs)
	if err != nil {
		return models.VendorStats{}, err
	}
	err = r.DB.QueryRowContext(ctx, `SELECT COALESCE(SUM(q.price), 0)
              FROM quotations q
              JOIN complaints c ON q.complaint_id = c.id
              WHERE q.vendor_id = ? AND q.status = ? AND c.status = ?`,
		vendorID, models.QuoteStatusApproved, workflow.StatusResolved).Scan(&stats.TotalEarned)
	if err != nil {
		return models.VendorStats{}, err
	}
	return stats, nil
}
