package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

type DonorHandler struct {
	donorService ports.DonorService
}

func NewDonorHandler(donors ports.DonorService) *DonorHandler {
	return &DonorHandler{donorService: donors}
}

// DonorRequest is the donor-registration form. Every field is explicit;
// unknown JSON keys are rejected by the decoder.
type DonorRequest struct {
	Name                  string     `json:"name"`
	BloodType             string     `json:"blood_type"`
	Location              string     `json:"location"`
	ContactNumber         string     `json:"contact_number"`
	LastDonation          *time.Time `json:"last_donation,omitempty"`
	TotalDonations        int        `json:"total_donations"`
	AvailableForEmergency bool       `json:"available_for_emergency"`
}

// Donors serves the /api/donors resource: GET lists, POST registers.
func (h *DonorHandler) Donors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DonorHandler) list(w http.ResponseWriter, r *http.Request) {
	donors, err := h.donorService.ListDonors(r.Context())
	if err != nil {
		log.Printf("donor handler: list failed: %v", err)
		http.Error(w, "failed to list donors", http.StatusInternalServerError)
		return
	}
	if donors == nil {
		donors = []domain.Donor{}
	}
	writeJSON(w, http.StatusOK, donors)
}

func (h *DonorHandler) create(w http.ResponseWriter, r *http.Request) {
	var req DonorRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	donor, err := h.donorService.RegisterDonor(r.Context(), domain.Donor{
		Name:                  req.Name,
		BloodType:             domain.BloodType(req.BloodType),
		Location:              req.Location,
		ContactNumber:         req.ContactNumber,
		LastDonation:          req.LastDonation,
		TotalDonations:        req.TotalDonations,
		AvailableForEmergency: req.AvailableForEmergency,
	})
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("donor handler: registration failed: %v", err)
		http.Error(w, "failed to register donor", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, donor)
}

// isValidationError separates draft-validation failures (client fixable,
// 400) from transport failures (500).
func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrMissingBloodType) ||
		errors.Is(err, domain.ErrInvalidBloodType) ||
		errors.Is(err, domain.ErrInvalidUrgency) ||
		errors.Is(err, domain.ErrMissingField) ||
		errors.Is(err, domain.ErrInvalidField)
}
