package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"civicBack/internal/models"
	"civicBack/internal/services"
)

type ComplaintHandler struct {
	Service   *services.ComplaintService
	UploadDir string
}

// CreateComplaint files a new complaint for the authenticated citizen. The
// body may be JSON or multipart form data with an optional evidence image.
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	var req models.Complaint
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		req.Description = r.FormValue("description")
		req.Location = r.FormValue("location")
		if cat, err := strconv.Atoi(r.FormValue("category_id")); err == nil {
			req.CategoryID = cat
		}
		if file, fh, err := r.FormFile("image"); err == nil {
			file.Close()
			name, err := saveUploadedImage(fh, h.UploadDir)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			req.ImagePath = &name
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	req.UserID = actor.ID

	created, err := h.Service.CreateComplaint(r.Context(), req)
	if err != nil {
		writeServiceError(w, "CreateComplaint", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ComplaintHandler) GetComplaintByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	complaint, err := h.Service.GetComplaintByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "GetComplaintByID", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaint)
}

// GetMyComplaints lists the authenticated citizen's own complaints.
func (h *ComplaintHandler) GetMyComplaints(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	complaints, err := h.Service.GetComplaintsByUser(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, "GetMyComplaints", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaints)
}

// GetAllComplaints is the admin console view over every complaint.
func (h *ComplaintHandler) GetAllComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.Service.GetAllComplaints(r.Context())
	if err != nil {
		writeServiceError(w, "GetAllComplaints", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaints)
}

// GetAssignedComplaints lists the complaints assigned to the acting officer.
func (h *ComplaintHandler) GetAssignedComplaints(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r)

	complaints, err := h.Service.GetComplaintsByOfficer(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, "GetAssignedComplaints", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaints)
}

// RouteToGovernment routes a pending complaint to a government department,
// optionally assigning an officer in the same step.
func (h *ComplaintHandler) RouteToGovernment(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	var req struct {
		OfficerID *int `json:"officer_id"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.Service.RouteToGovernment(r.Context(), id, req.OfficerID); err != nil {
		writeServiceError(w, "RouteToGovernment", err)
		return
	}
	writeStatusOK(w)
}

// RouteToPrivate opens a pending complaint to vendor bidding.
func (h *ComplaintHandler) RouteToPrivate(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	if err := h.Service.RouteToPrivate(r.Context(), id); err != nil {
		writeServiceError(w, "RouteToPrivate", err)
		return
	}
	writeStatusOK(w)
}

func (h *ComplaintHandler) AssignOfficer(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	var req struct {
		OfficerID int `json:"officer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.AssignOfficer(r.Context(), id, req.OfficerID); err != nil {
		writeServiceError(w, "AssignOfficer", err)
		return
	}
	writeStatusOK(w)
}

// AssignVendorDirect hands a pending complaint straight to a vendor, skipping
// the marketplace.
func (h *ComplaintHandler) AssignVendorDirect(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Service.AssignVendorDirect(r.Context(), id, req.VendorID); err != nil {
		writeServiceError(w, "AssignVendorDirect", err)
		return
	}
	writeStatusOK(w)
}

// SubmitCompletion marks a complaint resolved. The acting officer or vendor
// must be the one assigned to it.
func (h *ComplaintHandler) SubmitCompletion(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}
	actor := actorFromContext(r)

	var req struct {
		ResolutionNotes string `json:"resolution_notes"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.Service.SubmitCompletion(r.Context(), id, actor, req.ResolutionNotes); err != nil {
		writeServiceError(w, "SubmitCompletion", err)
		return
	}
	writeStatusOK(w)
}

func writeStatusOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
