package services

import (
	"context"
	"errors"
	"testing"

	"civicBack/internal/models"
	"civicBack/internal/workflow"
)

func newComplaintService(store *fakeStore) *ComplaintService {
	return &ComplaintService{
		ComplaintRepo: store,
		UserRepo:      store,
		VendorRepo:    store,
	}
}

func TestCreateComplaintValidation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newComplaintService(store)

	if _, err := svc.CreateComplaint(ctx, models.Complaint{Location: "somewhere"}); !errors.Is(err, models.ErrMissingFields) {
		t.Fatalf("want ErrMissingFields without description, got %v", err)
	}
	if _, err := svc.CreateComplaint(ctx, models.Complaint{Description: "broken pipe"}); !errors.Is(err, models.ErrMissingFields) {
		t.Fatalf("want ErrMissingFields without location, got %v", err)
	}

	c, err := svc.CreateComplaint(ctx, models.Complaint{UserID: 1, Description: "broken pipe", Location: "somewhere"})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if c.Status != workflow.StatusPending {
		t.Errorf("status = %q, want %q", c.Status, workflow.StatusPending)
	}
	if c.CategoryID != models.CategoryOther {
		t.Errorf("category = %d, want default %d", c.CategoryID, models.CategoryOther)
	}
}

func TestRouteToGovernment(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newComplaintService(store)

	officerID := store.addUser(models.RoleOfficer)
	citizenID := store.addUser(models.RoleCitizen)

	// Without an officer the complaint waits in Routed.
	id := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.RouteToGovernment(ctx, id, nil); err != nil {
		t.Fatalf("RouteToGovernment: %v", err)
	}
	c := store.complaint(id)
	if c.Status != workflow.StatusRouted || c.ResolutionType != workflow.PathGovernment {
		t.Errorf("got status %q path %q, want Routed/government", c.Status, c.ResolutionType)
	}

	// With an officer it starts immediately.
	id2 := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.RouteToGovernment(ctx, id2, &officerID); err != nil {
		t.Fatalf("RouteToGovernment with officer: %v", err)
	}
	c2 := store.complaint(id2)
	if c2.Status != workflow.StatusInProgress {
		t.Errorf("status = %q, want %q", c2.Status, workflow.StatusInProgress)
	}
	if c2.AssignedOfficer == nil || *c2.AssignedOfficer != officerID {
		t.Errorf("assigned officer = %v, want %d", c2.AssignedOfficer, officerID)
	}

	// A non-officer account cannot be assigned.
	id3 := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.RouteToGovernment(ctx, id3, &citizenID); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound for citizen as officer, got %v", err)
	}

	// Routing twice must fail without clobbering the first routing.
	if err := svc.RouteToGovernment(ctx, id, nil); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition on double routing, got %v", err)
	}
	if err := svc.RouteToPrivate(ctx, id); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition on cross-path rerouting, got %v", err)
	}
	if got := store.complaint(id); got.ResolutionType != workflow.PathGovernment {
		t.Errorf("path changed to %q after failed rerouting", got.ResolutionType)
	}
}

func TestRouteToPrivateOpensBidding(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newComplaintService(store)

	id := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.RouteToPrivate(ctx, id); err != nil {
		t.Fatalf("RouteToPrivate: %v", err)
	}
	c := store.complaint(id)
	if c.Status != workflow.StatusAwaitingQuotes || c.ResolutionType != workflow.PathPrivate {
		t.Errorf("got status %q path %q, want Awaiting Quotes/private", c.Status, c.ResolutionType)
	}

	if err := svc.RouteToPrivate(ctx, 999); !errors.Is(err, models.ErrComplaintNotFound) {
		t.Fatalf("want ErrComplaintNotFound, got %v", err)
	}
}

func TestAssignOfficerRequiresRouted(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newComplaintService(store)

	officerID := store.addUser(models.RoleOfficer)

	id := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.AssignOfficer(ctx, id, officerID); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition on pending complaint, got %v", err)
	}

	if err := svc.RouteToGovernment(ctx, id, nil); err != nil {
		t.Fatalf("RouteToGovernment: %v", err)
	}
	if err := svc.AssignOfficer(ctx, id, officerID); err != nil {
		t.Fatalf("AssignOfficer: %v", err)
	}
	c := store.complaint(id)
	if c.Status != workflow.StatusInProgress {
		t.Errorf("status = %q, want %q", c.Status, workflow.StatusInProgress)
	}
}

func TestAssignVendorDirectSkipsMarketplace(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newComplaintService(store)

	vendorID := store.addUser(models.RoleVendor)
	store.addVendor(vendorID, true)

	id := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.AssignVendorDirect(ctx, id, vendorID); err != nil {
		t.Fatalf("AssignVendorDirect: %v", err)
	}
	c := store.complaint(id)
	if c.Status != workflow.StatusInProgress || c.ResolutionType != workflow.PathPrivate {
		t.Errorf("got status %q path %q, want In Progress/private", c.Status, c.ResolutionType)
	}
	if c.PaymentStatus != models.PaymentStatusUnpaid {
		t.Errorf("direct assignment must not create a payment, got %q", c.PaymentStatus)
	}

	id2 := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.AssignVendorDirect(ctx, id2, 999); !errors.Is(err, models.ErrVendorNotFound) {
		t.Fatalf("want ErrVendorNotFound, got %v", err)
	}
}

func TestSubmitCompletionPermissions(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newComplaintService(store)

	officerID := store.addUser(models.RoleOfficer)
	otherOfficer := store.addUser(models.RoleOfficer)

	id := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.RouteToGovernment(ctx, id, &officerID); err != nil {
		t.Fatalf("RouteToGovernment: %v", err)
	}

	// A different officer cannot complete it.
	err := svc.SubmitCompletion(ctx, id, Actor{ID: otherOfficer, Role: models.RoleOfficer}, "done")
	if !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}

	// The assigned officer must provide notes on the government path.
	err = svc.SubmitCompletion(ctx, id, Actor{ID: officerID, Role: models.RoleOfficer}, "  ")
	if !errors.Is(err, models.ErrMissingFields) {
		t.Fatalf("want ErrMissingFields for empty notes, got %v", err)
	}

	if err := svc.SubmitCompletion(ctx, id, Actor{ID: officerID, Role: models.RoleOfficer}, "patched the road"); err != nil {
		t.Fatalf("SubmitCompletion: %v", err)
	}
	c := store.complaint(id)
	if c.Status != workflow.StatusResolved {
		t.Errorf("status = %q, want %q", c.Status, workflow.StatusResolved)
	}
	if c.ResolutionNotes == nil || *c.ResolutionNotes != "patched the road" {
		t.Errorf("resolution notes = %v, want recorded", c.ResolutionNotes)
	}

	// Resolving again must fail.
	err = svc.SubmitCompletion(ctx, id, Actor{ID: officerID, Role: models.RoleOfficer}, "again")
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("want ErrInvalidTransition on double completion, got %v", err)
	}
}

func TestSubmitCompletionVendorPath(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newComplaintService(store)

	vendorID := store.addUser(models.RoleVendor)
	intruder := store.addUser(models.RoleVendor)
	store.addVendor(vendorID, true)
	store.addVendor(intruder, true)

	id := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.AssignVendorDirect(ctx, id, vendorID); err != nil {
		t.Fatalf("AssignVendorDirect: %v", err)
	}

	err := svc.SubmitCompletion(ctx, id, Actor{ID: intruder, Role: models.RoleVendor}, "")
	if !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}

	// Notes are optional on the private path.
	if err := svc.SubmitCompletion(ctx, id, Actor{ID: vendorID, Role: models.RoleVendor}, ""); err != nil {
		t.Fatalf("SubmitCompletion: %v", err)
	}
	if got := store.complaint(id); got.Status != workflow.StatusResolved {
		t.Errorf("status = %q, want %q", got.Status, workflow.StatusResolved)
	}
}

func TestSubmitCompletionAdminOverride(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newComplaintService(store)

	adminID := store.addUser(models.RoleAdmin)
	officerID := store.addUser(models.RoleOfficer)

	id := store.addComplaint(workflow.StatusPending, workflow.PathUnset)
	if err := svc.RouteToGovernment(ctx, id, &officerID); err != nil {
		t.Fatalf("RouteToGovernment: %v", err)
	}

	if err := svc.SubmitCompletion(ctx, id, Actor{ID: adminID, Role: models.RoleAdmin}, "handled centrally"); err != nil {
		t.Fatalf("admin SubmitCompletion: %v", err)
	}
}
