package handler

import (
	"net/http"
	"time"

	"bloodbank/internal/domain/bloodtype"
	inventorydomain "bloodbank/internal/domain/inventory"
)

type createBloodRequestRequest struct {
	RecipientID    *int64  `json:"recipient_id"`
	HospitalID     *int64  `json:"hospital_id"`
	UnitsRequested *int    `json:"units_requested"`
	BloodType      *string `json:"blood_type"`
	RequestDate    *string `json:"request_date"`
}

type bloodRequestResponse struct {
	ID             int64      `json:"id"`
	RecipientID    int64      `json:"recipient_id"`
	HospitalID     int64      `json:"hospital_id"`
	BloodType      string     `json:"blood_type"`
	UnitsRequested int        `json:"units_requested"`
	Status         string     `json:"status"`
	RequestDate    string     `json:"request_date"`
	ResolvedAt     *time.Time `json:"resolved_at"`
}

func toBloodRequestResponse(request inventorydomain.BloodRequest) bloodRequestResponse {
	return bloodRequestResponse{
		ID:             request.ID,
		RecipientID:    request.RecipientID,
		HospitalID:     request.HospitalID,
		BloodType:      request.BloodType,
		UnitsRequested: request.UnitsRequested,
		Status:         request.Status,
		RequestDate:    formatDate(request.RequestDate),
		ResolvedAt:     request.ResolvedAt,
	}
}

func (h *Handlers) ListBloodRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	hospitalID, err := parseOptionalIDParam(query.Get("hospital_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid hospital_id")
		return
	}

	requests, err := h.Ledger.ListRequests(r.Context(), inventorydomain.RequestFilter{
		Status:     query.Get("status"),
		HospitalID: hospitalID,
	})
	if err != nil {
		h.writeLedgerError(w, "requests.list", err)
		return
	}

	response := make([]bloodRequestResponse, 0, len(requests))
	for _, request := range requests {
		response = append(response, toBloodRequestResponse(request))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetBloodRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	request, err := h.Ledger.GetRequest(r.Context(), id)
	if err != nil {
		h.writeLedgerError(w, "requests.get", err, "request_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toBloodRequestResponse(*request))
}

func (h *Handlers) CreateBloodRequest(w http.ResponseWriter, r *http.Request) {
	var req createBloodRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.RecipientID == nil || req.HospitalID == nil || req.UnitsRequested == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "recipient_id, hospital_id and units_requested are required")
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
	date, err := parseOptionalDate(req.RequestDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request_date")
		return
	}

	request, err := h.Ledger.CreateRequest(r.Context(), inventorydomain.RequestInput{
		RecipientID: *req.RecipientID,
		HospitalID:  *req.HospitalID,
		BloodType:   bloodType,
		Units:       *req.UnitsRequested,
		Date:        date,
	})
	if err != nil {
		h.writeLedgerError(w, "requests.create", err, "recipient_id", *req.RecipientID, "hospital_id", *req.HospitalID)
		return
	}

	writeJSON(w, http.StatusCreated, toBloodRequestResponse(*request))
}

func (h *Handlers) FulfillBloodRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	request, err := h.Ledger.FulfillRequest(r.Context(), id)
	if err != nil {
		h.writeLedgerError(w, "requests.fulfill", err, "request_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toBloodRequestResponse(*request))
}

func (h *Handlers) RejectBloodRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	request, err := h.Ledger.RejectRequest(r.Context(), id)
	if err != nil {
		h.writeLedgerError(w, "requests.reject", err, "request_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toBloodRequestResponse(*request))
}
