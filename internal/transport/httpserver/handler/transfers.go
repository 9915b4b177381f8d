package handler

import (
	"net/http"

	"bloodbank/internal/domain/bloodtype"
	inventorydomain "bloodbank/internal/domain/inventory"
)

type createTransferRequest struct {
	FromHospitalID   *int64  `json:"from_hospital_id"`
	ToHospitalID     *int64  `json:"to_hospital_id"`
	BloodType        *string `json:"blood_type"`
	UnitsTransferred *int    `json:"units_transferred"`
	TransferDate     *string `json:"transfer_date"`
}

type transferResponse struct {
	ID               int64  `json:"id"`
	FromHospitalID   int64  `json:"from_hospital_id"`
	ToHospitalID     int64  `json:"to_hospital_id"`
	BloodType        string `json:"blood_type"`
	UnitsTransferred int    `json:"units_transferred"`
	TransferDate     string `json:"transfer_date"`
}

func toTransferResponse(transfer inventorydomain.BloodTransfer) transferResponse {
	return transferResponse{
		ID:               transfer.ID,
		FromHospitalID:   transfer.FromHospitalID,
		ToHospitalID:     transfer.ToHospitalID,
		BloodType:        transfer.BloodType,
		UnitsTransferred: transfer.UnitsTransferred,
		TransferDate:     formatDate(transfer.TransferDate),
	}
}

func (h *Handlers) ListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.Ledger.ListTransfers(r.Context())
	if err != nil {
		h.log.InternalError("transfers.list: list failed", err)
		writeInternal(w)
		return
	}

	response := make([]transferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		response = append(response, toTransferResponse(transfer))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.FromHospitalID == nil || req.ToHospitalID == nil || req.BloodType == nil || req.UnitsTransferred == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from_hospital_id, to_hospital_id, blood_type and units_transferred are required")
		return
	}

	bloodType, err := bloodtype.Parse(*req.BloodType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", invalidBloodTypeMessage)
		return
	}
	date, err := parseOptionalDate(req.TransferDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid transfer_date")
		return
	}

	transfer, err := h.Ledger.Transfer(r.Context(), inventorydomain.TransferInput{
		FromHospitalID: *req.FromHospitalID,
		ToHospitalID:   *req.ToHospitalID,
		BloodType:      bloodType,
		Units:          *req.UnitsTransferred,
		Date:           date,
	})
	if err != nil {
		h.writeLedgerError(w, "transfers.create", err,
			"from_hospital_id", *req.FromHospitalID,
			"to_hospital_id", *req.ToHospitalID,
			"blood_type", bloodType,
			"units", *req.UnitsTransferred,
		)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{Message: "Blood transfer recorded successfully", ID: transfer.ID})
}
