package handler

import (
	"errors"
	"net/http"

	"bloodbank/internal/domain/bloodtype"
	donordomain "bloodbank/internal/domain/donor"
)

type createDonorRequest struct {
	Name             string  `json:"name"`
	BloodType        string  `json:"blood_type"`
	ContactInfo      *string `json:"contact_info"`
	LastDonationDate *string `json:"last_donation_date"`
}

type donorResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	BloodType        string  `json:"blood_type"`
	ContactInfo      *string `json:"contact_info"`
	LastDonationDate *string `json:"last_donation_date"`
}

type createDonorResponse struct {
	Message string        `json:"message"`
	Donor   donorResponse `json:"donor"`
}

func toDonorResponse(donor donordomain.Donor) donorResponse {
	return donorResponse{
		ID:               donor.ID,
		Name:             donor.Name,
		BloodType:        donor.BloodType,
		ContactInfo:      donor.ContactInfo,
		LastDonationDate: formatOptionalDate(donor.LastDonationDate),
	}
}

func (h *Handlers) ListDonors(w http.ResponseWriter, r *http.Request) {
	donors, err := h.Donors.ListDonors(r.Context())
	if err != nil {
		h.log.InternalError("donors.list: list failed", err)
		writeInternal(w)
		return
	}

	response := make([]donorResponse, 0, len(donors))
	for _, donor := range donors {
		response = append(response, toDonorResponse(donor))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetDonor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid donor id")
		return
	}

	donor, err := h.Donors.GetDonor(r.Context(), id)
	if err != nil {
		if errors.Is(err, donordomain.ErrDonorNotFound) {
			writeError(w, http.StatusNotFound, "donor_not_found", "donor not found")
			return
		}
		h.log.InternalError("donors.get: get failed", err, "donor_id", id)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toDonorResponse(*donor))
}

func (h *Handlers) CreateDonor(w http.ResponseWriter, r *http.Request) {
	var req createDonorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	lastDonation, err := parseOptionalDate(req.LastDonationDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid last_donation_date")
		return
	}

	donor, err := h.Donors.CreateDonor(r.Context(), donordomain.CreateInput{
		Name:             req.Name,
		BloodType:        req.BloodType,
		ContactInfo:      req.ContactInfo,
		LastDonationDate: lastDonation,
	})
	if err != nil {
		switch {
		case errors.Is(err, donordomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		case errors.Is(err, bloodtype.ErrInvalid):
			writeError(w, http.StatusBadRequest, "invalid_request", invalidBloodTypeMessage)
		default:
			h.log.InternalError("donors.create: create failed", err)
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, createDonorResponse{
		Message: "Donor added successfully",
		Donor:   toDonorResponse(*donor),
	})
}
