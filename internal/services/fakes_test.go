package services

import (
	"context"
	"sync"
	"time"

	"civicBack/internal/models"
	"civicBack/internal/workflow"
)

// fakeStore is a mutex-guarded in-memory implementation of every store
// interface. It mirrors the MySQL repositories' guard semantics, including
// the compare-and-swap status checks, so the services can be exercised
// without a database.
type fakeStore struct {
	mu sync.Mutex

	complaints map[int]*models.Complaint
	quotations map[int]*models.Quotation
	vendors    map[int]*models.Vendor // keyed by user id
	feedback   map[int]*models.Feedback
	users      map[int]*models.User
	jobUpdates map[int]*models.JobUpdate

	nextComplaintID int
	nextQuotationID int
	nextVendorID    int
	nextFeedbackID  int
	nextUserID      int
	nextJobUpdateID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		complaints:      make(map[int]*models.Complaint),
		quotations:      make(map[int]*models.Quotation),
		vendors:         make(map[int]*models.Vendor),
		feedback:        make(map[int]*models.Feedback),
		users:           make(map[int]*models.User),
		jobUpdates:      make(map[int]*models.JobUpdate),
		nextComplaintID: 1,
		nextQuotationID: 1,
		nextVendorID:    1,
		nextFeedbackID:  1,
		nextUserID:      1,
		nextJobUpdateID: 1,
	}
}

// Seed helpers used by the tests.

func (s *fakeStore) addUser(role string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextUserID
	s.nextUserID++
	s.users[id] = &models.User{ID: id, Name: "user", Role: role, CreatedAt: time.Now()}
	return id
}

func (s *fakeStore) addVendor(userID int, verified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextVendorID
	s.nextVendorID++
	s.vendors[userID] = &models.Vendor{
		ID:           id,
		UserID:       userID,
		BusinessName: "biz",
		ServiceType:  "plumbing",
		Verified:     verified,
		CreatedAt:    time.Now(),
	}
}

func (s *fakeStore) addComplaint(status, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextComplaintID
	s.nextComplaintID++
	s.complaints[id] = &models.Complaint{
		ID:             id,
		UserID:         1,
		CategoryID:     models.CategoryOther,
		Description:    "pothole",
		Location:       "main street",
		Status:         status,
		ResolutionType: path,
		PaymentStatus:  models.PaymentStatusUnpaid,
		CreatedAt:      time.Now(),
	}
	return id
}

func (s *fakeStore) complaint(id int) models.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.complaints[id]
}

func (s *fakeStore) quotesFor(complaintID int) []models.Quotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Quotation
	for i := 1; i < s.nextQuotationID; i++ {
		if q, ok := s.quotations[i]; ok && q.ComplaintID == complaintID {
			out = append(out, *q)
		}
	}
	return out
}

// ComplaintStore

func (s *fakeStore) CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextComplaintID
	s.nextComplaintID++
	c.Status = workflow.StatusPending
	c.ResolutionType = workflow.PathUnset
	c.PaymentStatus = models.PaymentStatusUnpaid
	c.CreatedAt = time.Now()
	s.complaints[c.ID] = &c
	return c, nil
}

func (s *fakeStore) GetComplaintByID(ctx context.Context, id int) (models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[id]
	if !ok {
		return models.Complaint{}, models.ErrComplaintNotFound
	}
	return *c, nil
}

func (s *fakeStore) GetAllComplaints(ctx context.Context) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Complaint
	for i := 1; i < s.nextComplaintID; i++ {
		if c, ok := s.complaints[i]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeStore) GetComplaintsByUser(ctx context.Context, userID int) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Complaint
	for i := 1; i < s.nextComplaintID; i++ {
		if c, ok := s.complaints[i]; ok && c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeStore) GetComplaintsByOfficer(ctx context.Context, officerID int) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Complaint
	for i := 1; i < s.nextComplaintID; i++ {
		if c, ok := s.complaints[i]; ok && c.AssignedOfficer != nil && *c.AssignedOfficer == officerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeStore) ListOpenForQuotes(ctx context.Context) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Complaint
	for i := 1; i < s.nextComplaintID; i++ {
		if c, ok := s.complaints[i]; ok && c.Status == workflow.StatusAwaitingQuotes {
			out = append(out, *c)
		}
	}
	return out, nil
}

// cas moves a complaint's status if it currently holds fromStatus, mirroring
// the repository's compare-and-swap update.
func (s *fakeStore) cas(id int, fromStatus, toStatus string) error {
	if !workflow.CanTransition(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	c, ok := s.complaints[id]
	if !ok {
		return models.ErrComplaintNotFound
	}
	if c.Status != fromStatus {
		return models.ErrInvalidTransition
	}
	c.Status = toStatus
	return nil
}

func (s *fakeStore) RouteToGovernment(ctx context.Context, complaintID int, officerID *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	to := workflow.StatusRouted
	if officerID != nil {
		to = workflow.StatusInProgress
	}
	if err := s.cas(complaintID, workflow.StatusPending, to); err != nil {
		return err
	}
	c := s.complaints[complaintID]
	c.ResolutionType = workflow.PathGovernment
	c.AssignedOfficer = officerID
	return nil
}

func (s *fakeStore) RouteToPrivate(ctx context.Context, complaintID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cas(complaintID, workflow.StatusPending, workflow.StatusAwaitingQuotes); err != nil {
		return err
	}
	s.complaints[complaintID].ResolutionType = workflow.PathPrivate
	return nil
}

func (s *fakeStore) AssignOfficer(ctx context.Context, complaintID, officerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cas(complaintID, workflow.StatusRouted, workflow.StatusInProgress); err != nil {
		return err
	}
	s.complaints[complaintID].AssignedOfficer = &officerID
	return nil
}

func (s *fakeStore) AssignVendorDirect(ctx context.Context, complaintID, vendorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cas(complaintID, workflow.StatusPending, workflow.StatusInProgress); err != nil {
		return err
	}
	c := s.complaints[complaintID]
	c.ResolutionType = workflow.PathPrivate
	c.SelectedVendor = &vendorID
	return nil
}

func (s *fakeStore) ConfirmPayment(ctx context.Context, complaintID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cas(complaintID, workflow.StatusAwaitingPayment, workflow.StatusInProgress); err != nil {
		return err
	}
	s.complaints[complaintID].PaymentStatus = models.PaymentStatusPaid
	return nil
}

func (s *fakeStore) MarkResolved(ctx context.Context, complaintID int, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[complaintID]
	if !ok {
		return models.ErrComplaintNotFound
	}
	if err := s.cas(complaintID, c.Status, workflow.StatusResolved); err != nil {
		return err
	}
	if notes != "" {
		c.ResolutionNotes = &notes
	}
	return nil
}

// QuotationStore

func (s *fakeStore) CreateQuotation(ctx context.Context, q models.Quotation) (models.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[q.ComplaintID]
	if !ok {
		return models.Quotation{}, models.ErrComplaintNotFound
	}
	if c.Status != workflow.StatusAwaitingQuotes {
		return models.Quotation{}, models.ErrInvalidTransition
	}
	q.ID = s.nextQuotationID
	s.nextQuotationID++
	q.Status = models.QuoteStatusPending
	q.CreatedAt = time.Now()
	s.quotations[q.ID] = &q
	return q, nil
}

func (s *fakeStore) GetQuotationsByComplaint(ctx context.Context, complaintID int) ([]models.Quotation, error) {
	return s.quotesFor(complaintID), nil
}

func (s *fakeStore) GetQuotationsByVendor(ctx context.Context, vendorID int) ([]models.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Quotation
	for i := 1; i < s.nextQuotationID; i++ {
		if q, ok := s.quotations[i]; ok && q.VendorID == vendorID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *fakeStore) ApproveQuotation(ctx context.Context, complaintID, vendorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The status swap doubles as the guard, as in the SQL transaction.
	if err := s.cas(complaintID, workflow.StatusAwaitingQuotes, workflow.StatusAwaitingPayment); err != nil {
		return err
	}

	var latest *models.Quotation
	for i := 1; i < s.nextQuotationID; i++ {
		q, ok := s.quotations[i]
		if !ok || q.ComplaintID != complaintID {
			continue
		}
		q.Status = models.QuoteStatusRejected
		if q.VendorID == vendorID {
			latest = q
		}
	}
	if latest == nil {
		// Roll the guard back, as the SQL transaction would.
		s.complaints[complaintID].Status = workflow.StatusAwaitingQuotes
		for i := 1; i < s.nextQuotationID; i++ {
			if q, ok := s.quotations[i]; ok && q.ComplaintID == complaintID {
				q.Status = models.QuoteStatusPending
			}
		}
		return models.ErrQuotationNotFound
	}
	latest.Status = models.QuoteStatusApproved
	s.complaints[complaintID].SelectedVendor = &vendorID
	return nil
}

func (s *fakeStore) StatsByVendor(ctx context.Context, vendorID int) (models.VendorStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats models.VendorStats
	for _, q := range s.quotations {
		if q.VendorID != vendorID {
			continue
		}
		if q.Status == models.QuoteStatusPending {
			stats.PendingQuotes++
		}
		if q.Status == models.QuoteStatusApproved {
			if c, ok := s.complaints[q.ComplaintID]; ok && c.Status == workflow.StatusResolved {
				stats.TotalEarned += q.Price
			}
		}
	}
	for _, c := range s.complaints {
		if c.SelectedVendor != nil && *c.SelectedVendor == vendorID && c.Status == workflow.StatusResolved {
			stats.ResolvedJobs++
		}
	}
	return stats, nil
}

// VendorStore

func (s *fakeStore) CreateVendor(ctx context.Context, v models.Vendor) (models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextVendorID
	s.nextVendorID++
	v.CreatedAt = time.Now()
	s.vendors[v.UserID] = &v
	return v, nil
}

func (s *fakeStore) GetVendorByUserID(ctx context.Context, userID int) (models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[userID]
	if !ok {
		return models.Vendor{}, models.ErrVendorNotFound
	}
	return *v, nil
}

func (s *fakeStore) GetUnverifiedVendors(ctx context.Context) ([]models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Vendor
	for _, v := range s.vendors {
		if !v.Verified {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *fakeStore) VerifyVendor(ctx context.Context, vendorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vendors {
		if v.ID == vendorID {
			v.Verified = true
			return nil
		}
	}
	return models.ErrVendorNotFound
}

func (s *fakeStore) RecalculateRating(ctx context.Context, vendorUserID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[vendorUserID]
	if !ok {
		return models.ErrVendorNotFound
	}
	var sum, n int
	for _, f := range s.feedback {
		c, ok := s.complaints[f.ComplaintID]
		if !ok || c.SelectedVendor == nil || *c.SelectedVendor != vendorUserID {
			continue
		}
		if c.Status != workflow.StatusResolved {
			continue
		}
		sum += f.Rating
		n++
	}
	if n > 0 {
		v.Rating = float64(sum) / float64(n)
	}
	return nil
}

// FeedbackStore

func (s *fakeStore) CreateFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[f.ComplaintID]
	if !ok {
		return models.Feedback{}, models.ErrComplaintNotFound
	}
	if c.Status != workflow.StatusResolved {
		return models.Feedback{}, models.ErrInvalidTransition
	}
	for _, existing := range s.feedback {
		if existing.ComplaintID == f.ComplaintID {
			return models.Feedback{}, models.ErrFeedbackExists
		}
	}
	f.ID = s.nextFeedbackID
	s.nextFeedbackID++
	f.CreatedAt = time.Now()
	s.feedback[f.ID] = &f
	return f, nil
}

func (s *fakeStore) GetFeedbackByComplaint(ctx context.Context, complaintID int) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.feedback {
		if f.ComplaintID == complaintID {
			return *f, nil
		}
	}
	return models.Feedback{}, models.ErrFeedbackNotFound
}

// UserStore

func (s *fakeStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now()
	s.users[user.ID] = &user
	return user, nil
}

func (s *fakeStore) GetUserByID(ctx context.Context, id int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return *u, nil
}

func (s *fakeStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (s *fakeStore) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for i := 1; i < s.nextUserID; i++ {
		if u, ok := s.users[i]; ok && (role == "" || u.Role == role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

// JobUpdateStore

func (s *fakeStore) CreateJobUpdate(ctx context.Context, ju models.JobUpdate) (models.JobUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ju.ID = s.nextJobUpdateID
	s.nextJobUpdateID++
	ju.CreatedAt = time.Now()
	s.jobUpdates[ju.ID] = &ju
	return ju, nil
}

func (s *fakeStore) GetJobUpdatesByComplaint(ctx context.Context, complaintID int) ([]models.JobUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.JobUpdate
	for i := 1; i < s.nextJobUpdateID; i++ {
		if ju, ok := s.jobUpdates[i]; ok && ju.ComplaintID == complaintID {
			out = append(out, *ju)
		}
	}
	return out, nil
}
