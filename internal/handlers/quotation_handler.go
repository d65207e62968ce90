package handlers

import (
	"encoding/json"
	"net/http"

	"civicBack/internal/services"
)

type QuotationHandler struct {
	Service *services.QuotationService
}

// GetOpenJobs lists the complaints open for bidding to the acting vendor.
func (h *QuotationHandler) GetOpenJobs(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	jobs, err := h.Service.ListOpenJobs(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, "GetOpenJobs", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// SubmitQuote records the acting vendor's bid on a complaint.
func (h *QuotationHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}
	actor := actorFromContext(r)

	var req struct {
		Price         float64 `json:"price"`
		EstimatedTime string  `json:"estimated_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quote, err := h.Service.SubmitQuote(r.Context(), actor.ID, id, req.Price, req.EstimatedTime)
	if err != nil {
		writeServiceError(w, "SubmitQuote", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quote)
}

// GetQuotesForComplaint returns every bid on a complaint in submission order.
func (h *QuotationHandler) GetQuotesForComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	quotes, err := h.Service.GetQuotesForComplaint(r.Context(), id)
	if err != nil {
		writeServiceError(w, "GetQuotesForComplaint", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotes)
}

// GetMyQuotes lists every bid the acting vendor has submitted.
func (h *QuotationHandler) GetMyQuotes(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	quotes, err := h.Service.GetQuotesByVendor(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, "GetMyQuotes", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotes)
}

// ApproveQuotation selects the winning vendor for a complaint. The other bids
// are rejected in the same transaction.
func (h *QuotationHandler) ApproveQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	var req struct {
		VendorID int `json:"vendor_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ApproveQuotation(r.Context(), id, req.VendorID); err != nil {
		writeServiceError(w, "ApproveQuotation", err)
		return
	}
	writeStatusOK(w)
}

// ConfirmPayment records payment for the approved quotation and moves the
// complaint into progress.
func (h *QuotationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	if err := h.Service.ConfirmPayment(r.Context(), id); err != nil {
		writeServiceError(w, "ConfirmPayment", err)
		return
	}
	writeStatusOK(w)
}

// GetVendorStats returns the acting vendor's dashboard counters.
func (h *QuotationHandler) GetVendorStats(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	stats, err := h.Service.VendorStats(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, "GetVendorStats", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
