package handlers

import (
	"errors"
	"log"
	"net/http"

	"civicBack/internal/models"
)

// writeServiceError maps service sentinels onto HTTP statuses. Store failures
// are logged server-side and surface as a generic 500 so storage error text
// never reaches clients.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, models.ErrComplaintNotFound),
		errors.Is(err, models.ErrQuotationNotFound),
		errors.Is(err, models.ErrVendorNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrFeedbackNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrFeedbackExists),
		errors.Is(err, models.ErrVendorExists),
		errors.Is(err, models.ErrDuplicateEmail):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrVendorNotVerified),
		errors.Is(err, models.ErrPermissionDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrMissingFields):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case isForeignKeyConstraintError(err):
		http.Error(w, "referenced record does not exist", http.StatusBadRequest)
	default:
		log.Printf("%s error: %v", op, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
