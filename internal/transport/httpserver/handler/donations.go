package handler

import (
	"net/http"

	"bloodbank/internal/domain/bloodtype"
	inventorydomain "bloodbank/internal/domain/inventory"
)

type createDonationRequest struct {
	DonorID    *int64  `json:"donor_id"`
	HospitalID *int64  `json:"hospital_id"`
	Units      *int    `json:"units"`
	BloodType  *string `json:"blood_type"`
	Date       *string `json:"date"`
}

type donationResponse struct {
	ID           int64  `json:"id"`
	DonorID      int64  `json:"donor_id"`
	HospitalID   int64  `json:"hospital_id"`
	BloodType    string `json:"blood_type"`
	UnitsDonated int    `json:"units_donated"`
	Date         string `json:"date"`
}

func (h *Handlers) ListDonations(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Ledger.ListDonations(r.Context())
	if err != nil {
		h.log.InternalError("donations.list: list failed", err)
		writeInternal(w)
		return
	}

	response := make([]donationResponse, 0, len(logs))
	for _, entry := range logs {
		response = append(response, donationResponse{
			ID:           entry.ID,
			DonorID:      entry.DonorID,
			HospitalID:   entry.HospitalID,
			BloodType:    entry.BloodType,
			UnitsDonated: entry.UnitsDonated,
			Date:         formatDate(entry.Date),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.DonorID == nil || req.HospitalID == nil || req.Units == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "donor_id, hospital_id and units are required")
		return
	}

	var bloodType string
	if req.BloodType != nil {
		parsed, err := bloodtype.Parse(*req.BloodType)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", invalidBloodTypeMessage)
			return
		}
		bloodType = parsed
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	result, err := h.Ledger.RecordDonation(r.Context(), inventorydomain.DonationInput{
		DonorID:    *req.DonorID,
		HospitalID: *req.HospitalID,
		BloodType:  bloodType,
		Units:      *req.Units,
		Date:       date,
	})
	if err != nil {
		h.writeLedgerError(w, "donations.create", err, "donor_id", *req.DonorID, "hospital_id", *req.HospitalID)
		return
	}

	writeJSON(w, http.StatusCreated, movementResponse{
		Message: "Donation recorded successfully",
		ID:      result.Log.ID,
		Units:   result.Inventory.Units,
	})
}
