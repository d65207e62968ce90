package repositories

import (
	"context"
	"database/sql"
	"errors"

	"civicBack/internal/models"
	"civicBack/internal/workflow"
)

type ComplaintRepository struct {
	DB *sql.DB
}

const complaintColumns = `c.id, c.user_id, c.category_id, c.description, c.location, c.image_path,
       c.status, c.resolution_type, c.assigned_officer_id, c.selected_vendor_id,
       c.resolution_notes, c.payment_status, c.created_at, c.updated_at`

func scanComplaint(row interface{ Scan(...any) error }, c *models.Complaint) error {
	return row.Scan(&c.ID, &c.UserID, &c.CategoryID, &c.Description, &c.Location, &c.ImagePath,
		&c.Status, &c.ResolutionType, &c.AssignedOfficer, &c.SelectedVendor,
		&c.ResolutionNotes, &c.PaymentStatus, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ComplaintRepository) CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	query := `INSERT INTO complaints (user_id, category_id, description, location, image_path, status, resolution_type, payment_status)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		c.UserID, c.CategoryID, c.Description, c.Location, c.ImagePath,
		workflow.StatusPending, workflow.PathUnset, models.PaymentStatusUnpaid)
	if err != nil {
		return models.Complaint{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Complaint{}, err
	}
	return r.GetComplaintByID(ctx, int(id))
}

func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id int) (models.Complaint, error) {
	var c models.Complaint
	row := r.DB.QueryRowContext(ctx, `SELECT `+complaintColumns+` FROM complaints c WHERE c.id = ?`, id)
	if err := scanComplaint(row, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Complaint{}, models.ErrComplaintNotFound
		}
		return models.Complaint{}, err
	}
	return c, nil
}

// GetAllComplaints returns every complaint with citizen, category and officer
// display names for the admin console.
func (r *ComplaintRepository) GetAllComplaints(ctx context.Context) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + `, u.name, cat.name, o.name
              FROM complaints c
              JOIN users u ON c.user_id = u.id
              JOIN categories cat ON c.category_id = cat.id
              LEFT JOIN users o ON c.assigned_officer_id = o.id
              ORDER BY c.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.CategoryID, &c.Description, &c.Location, &c.ImagePath,
			&c.Status, &c.ResolutionType, &c.AssignedOfficer, &c.SelectedVendor,
			&c.ResolutionNotes, &c.PaymentStatus, &c.CreatedAt, &c.UpdatedAt,
			&c.CitizenName, &c.CategoryName, &c.OfficerName); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (r *ComplaintRepository) GetComplaintsByUser(ctx context.Context, userID int) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + `, cat.name
              FROM complaints c
              JOIN categories cat ON c.category_id = cat.id
              WHERE c.user_id = ?
              ORDER BY c.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.CategoryID, &c.Description, &c.Location, &c.ImagePath,
			&c.Status, &c.ResolutionType, &c.AssignedOfficer, &c.SelectedVendor,
			&c.ResolutionNotes, &c.PaymentStatus, &c.CreatedAt, &c.UpdatedAt,
			&c.CategoryName); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (r *ComplaintRepository) GetComplaintsByOfficer(ctx context.Context, officerID int) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + `, u.name, cat.name
              FROM complaints c
              JOIN users u ON c.user_id = u.id
              JOIN categories cat ON c.category_id = cat.id
              WHERE c.assigned_officer_id = ?
              ORDER BY c.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, officerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.CategoryID, &c.Description, &c.Location, &c.ImagePath,
			&c.Status, &c.ResolutionType, &c.AssignedOfficer, &c.SelectedVendor,
			&c.ResolutionNotes, &c.PaymentStatus, &c.CreatedAt, &c.UpdatedAt,
			&c.CitizenName, &c.CategoryName); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

// ListOpenForQuotes returns the complaints the vendor marketplace advertises.
func (r *ComplaintRepository) ListOpenForQuotes(ctx context.Context) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + `, cat.name
              FROM complaints c
              JOIN categories cat ON c.category_id = cat.id
              WHERE c.resolution_type = ? AND c.status = ?
              ORDER BY c.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, workflow.PathPrivate, workflow.StatusAwaitingQuotes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.CategoryID, &c.Description, &c.Location, &c.ImagePath,
			&c.Status, &c.ResolutionType, &c.AssignedOfficer, &c.SelectedVendor,
			&c.ResolutionNotes, &c.PaymentStatus, &c.CreatedAt, &c.UpdatedAt,
			&c.CategoryName); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

// RouteToGovernment moves a Pending complaint onto the government path. With
// an officer the complaint goes straight to In Progress; without one it parks
// in Routed until assign_officer.
func (r *ComplaintRepository) RouteToGovernment(ctx context.Context, complaintID int, officerID *int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	to := workflow.StatusRouted
	if officerID != nil {
		to = workflow.StatusInProgress
	}
	if err := workflow.Apply(ctx, tx, complaintID, workflow.StatusPending, to); err != nil {
		return r.classifyApplyErr(ctx, tx, complaintID, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE complaints SET resolution_type = ?, assigned_officer_id = ? WHERE id = ?`,
		workflow.PathGovernment, officerID, complaintID); err != nil {
		return err
	}
	return tx.Commit()
}

// RouteToPrivate opens a Pending complaint to the vendor marketplace.
func (r *ComplaintRepository) RouteToPrivate(ctx context.Context, complaintID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := workflow.Apply(ctx, tx, complaintID, workflow.StatusPending, workflow.StatusAwaitingQuotes); err != nil {
		return r.classifyApplyErr(ctx, tx, complaintID, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE complaints SET resolution_type = ? WHERE id = ?`,
		workflow.PathPrivate, complaintID); err != nil {
		return err
	}
	return tx.Commit()
}

// AssignOfficer attaches an officer to a Routed complaint and starts work.
func (r *ComplaintRepository) AssignOfficer(ctx context.Context, complaintID, officerID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := workflow.Apply(ctx, tx, complaintID, workflow.StatusRouted, workflow.StatusInProgress); err != nil {
		return r.classifyApplyErr(ctx, tx, complaintID, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE complaints SET assigned_officer_id = ? WHERE id = ?`,
		officerID, complaintID); err != nil {
		return err
	}
	return tx.Commit()
}

// AssignVendorDirect is the admin override: the complaint goes private and
// straight to In Progress without the marketplace or the payment gate.
func (r *ComplaintRepository) AssignVendorDirect(ctx context.Context, complaintID, vendorID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := workflow.Apply(ctx, tx, complaintID, workflow.StatusPending, workflow.StatusInProgress); err != nil {
		return r.classifyApplyErr(ctx, tx, complaintID, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE complaints SET resolution_type = ?, selected_vendor_id = ? WHERE id = ?`,
		workflow.PathPrivate, vendorID, complaintID); err != nil {
		return err
	}
	return tx.Commit()
}

// ConfirmPayment records payment and unblocks the selected vendor's work.
func (r *ComplaintRepository) ConfirmPayment(ctx context.Context, complaintID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := workflow.Apply(ctx, tx, complaintID, workflow.StatusAwaitingPayment, workflow.StatusInProgress); err != nil {
		return r.classifyApplyErr(ctx, tx, complaintID, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE complaints SET payment_status = ? WHERE id = ?`,
		models.PaymentStatusPaid, complaintID); err != nil {
		return err
	}
	return tx.Commit()
}

// MarkResolved closes a complaint from Routed or In Progress and stores the
// resolution notes. Resolving an already resolved complaint fails.
func (r *ComplaintRepository) MarkResolved(ctx context.Context, complaintID int, notes string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM complaints WHERE id = ? FOR UPDATE`, complaintID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrComplaintNotFound
	}
	if err != nil {
		return err
	}
	if current != workflow.StatusRouted && current != workflow.StatusInProgress {
		return models.ErrInvalidTransition
	}
	if err := workflow.Apply(ctx, tx, complaintID, current, workflow.StatusResolved); err != nil {
		return r.classifyApplyErr(ctx, tx, complaintID, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE complaints SET resolution_notes = ? WHERE id = ?`,
		notes, complaintID); err != nil {
		return err
	}
	return tx.Commit()
}

// classifyApplyErr turns a CAS miss into the right sentinel: the row either
// holds a different status or does not exist at all.
func (r *ComplaintRepository) classifyApplyErr(ctx context.Context, tx *sql.Tx, complaintID int, err error) error {
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
