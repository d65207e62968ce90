package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"civicBack/internal/services"
)

type VendorHandler struct {
	Service   *services.VendorService
	UploadDir string
}

// RegisterVendor creates an unverified marketplace profile for the acting
// user. An administrator verifies it before the vendor can bid.
func (h *VendorHandler) RegisterVendor(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	var req struct {
		BusinessName string `json:"business_name"`
		ServiceType  string `json:"service_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	vendor, err := h.Service.RegisterVendor(r.Context(), actor.ID, req.BusinessName, req.ServiceType)
	if err != nil {
		writeServiceError(w, "RegisterVendor", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(vendor)
}

// GetMyProfile returns the acting vendor's marketplace profile.
func (h *VendorHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	vendor, err := h.Service.GetVendorByUserID(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, "GetMyProfile", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vendor)
}

// GetUnverifiedVendors lists profiles awaiting admin verification.
func (h *VendorHandler) GetUnverifiedVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Service.GetUnverifiedVendors(r.Context())
	if err != nil {
		writeServiceError(w, "GetUnverifiedVendors", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vendors)
}

func (h *VendorHandler) VerifyVendor(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid vendor id", http.StatusBadRequest)
		return
	}

	if err := h.Service.VerifyVendor(r.Context(), id); err != nil {
		writeServiceError(w, "VerifyVendor", err)
		return
	}
	writeStatusOK(w)
}

// PostJobUpdate records a progress note from the vendor working a complaint.
// An optional image may be attached as multipart form data.
func (h *VendorHandler) PostJobUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}
	actor := actorFromContext(r)

	var message string
	var imageURL *string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		message = r.FormValue("message")
		if file, fh, err := r.FormFile("image"); err == nil {
			file.Close()
			name, err := saveUploadedImage(fh, h.UploadDir)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			imageURL = &name
		}
	} else {
		var req struct {
			Message  string  `json:"message"`
			ImageURL *string `json:"image_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		message = req.Message
		imageURL = req.ImageURL
	}

	update, err := h.Service.PostJobUpdate(r.Context(), actor.ID, id, message, imageURL)
	if err != nil {
		writeServiceError(w, "PostJobUpdate", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(update)
}

// GetJobUpdates returns the progress notes for a complaint in posting order.
func (h *VendorHandler) GetJobUpdates(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	updates, err := h.Service.GetJobUpdates(r.Context(), id)
	if err != nil {
		writeServiceError(w, "GetJobUpdates", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updates)
}
