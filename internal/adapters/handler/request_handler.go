package handler

import (
	"log"
	"net/http"

	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/middleware"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

type RequestHandler struct {
	requestService ports.RequestService
}

func NewRequestHandler(requests ports.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requests}
}

// BloodRequestRequest is the blood-request form.
type BloodRequestRequest struct {
	PatientName   string `json:"patient_name"`
	BloodType     string `json:"blood_type"`
	Hospital      string `json:"hospital"`
	Location      string `json:"location"`
	ContactNumber string `json:"contact_number"`
	Urgency       string `json:"urgency"`
	Notes         string `json:"notes,omitempty"`
}

// Requests serves the /api/requests resource: GET lists, POST creates.
func (h *RequestHandler) Requests(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *RequestHandler) list(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListRequests(r.Context())
	if err != nil {
		log.Printf("request handler: list failed: %v", err)
		http.Error(w, "failed to list blood requests", http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []domain.BloodRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) create(w http.ResponseWriter, r *http.Request) {
	var req BloodRequestRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	createdBy, _ := r.Context().Value(middleware.UserIDKey).(string)

	created, err := h.requestService.CreateRequest(r.Context(), domain.BloodRequest{
		PatientName:   req.PatientName,
		BloodType:     domain.BloodType(req.BloodType),
		Hospital:      req.Hospital,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
		Urgency:       domain.Urgency(req.Urgency),
		Notes:         req.Notes,
		CreatedBy:     createdBy,
	})
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("request handler: creation failed: %v", err)
		http.Error(w, "failed to create blood request", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
