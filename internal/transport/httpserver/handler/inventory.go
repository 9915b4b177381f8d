package handler

import (
	"net/http"
	"time"

	"bloodbank/internal/domain/bloodtype"
	inventorydomain "bloodbank/internal/domain/inventory"
)

type stockMovementRequest struct {
	BloodType  *string `json:"blood_type"`
	Units      *int    `json:"units"`
	HospitalID *int64  `json:"hospital_id"`
}

type inventoryResponse struct {
	ID         int64     `json:"id"`
	HospitalID int64     `json:"hospital_id"`
	BloodType  string    `json:"blood_type"`
	Units      int       `json:"units"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toInventoryResponses(rows []inventorydomain.Inventory) []inventoryResponse {
	response := make([]inventoryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, inventoryResponse{
			ID:         row.ID,
			HospitalID: row.HospitalID,
			BloodType:  row.BloodType,
			Units:      row.Units,
			UpdatedAt:  row.UpdatedAt,
		})
	}
	return response
}

// validate checks presence and shape; the ledger owns the positivity rule
// but rejecting early keeps the message specific.
func (req stockMovementRequest) validate() (hospitalID int64, bloodType string, units int, message string) {
	if req.BloodType == nil || req.Units == nil || req.HospitalID == nil {
		return 0, "", 0, "blood_type, units and hospital_id are required"
	}
	parsed, err := bloodtype.Parse(*req.BloodType)
	if err != nil {
		return 0, "", 0, invalidBloodTypeMessage
	}
	if *req.Units <= 0 || *req.Units > inventorydomain.MaxUnits {
		return 0, "", 0, "units must be a positive integer no greater than 2147483647"
	}
	if *req.HospitalID <= 0 {
		return 0, "", 0, "invalid hospital_id"
	}
	return *req.HospitalID, parsed, *req.Units, ""
}

func (h *Handlers) ListInventory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	hospitalID, err := parseOptionalIDParam(query.Get("hospital_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid hospital_id")
		return
	}

	filter := inventorydomain.InventoryFilter{HospitalID: hospitalID}
	if value := query.Get("blood_type"); value != "" {
		parsed, err := bloodtype.Parse(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", invalidBloodTypeMessage)
			return
		}
		filter.BloodType = parsed
	}

	rows, err := h.Ledger.ListInventory(r.Context(), filter)
	if err != nil {
		h.log.InternalError("inventory.list: list failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponses(rows))
}

// AddInventory credits stock: 201 when the (hospital, blood type) row is new,
// 200 when an existing row was incremented.
func (h *Handlers) AddInventory(w http.ResponseWriter, r *http.Request) {
	var req stockMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	hospitalID, bloodType, units, message := req.validate()
	if message != "" {
		writeError(w, http.StatusBadRequest, "invalid_request", message)
		return
	}

	result, err := h.Ledger.Credit(r.Context(), inventorydomain.CreditInput{
		HospitalID: hospitalID,
		BloodType:  bloodType,
		Units:      units,
	})
	if err != nil {
		h.writeLedgerError(w, "inventory.credit", err, "hospital_id", hospitalID, "blood_type", bloodType, "units", units)
		return
	}

	status := http.StatusOK
	message = "Inventory updated successfully"
	if result.Created {
		status = http.StatusCreated
		message = "Inventory added successfully"
	}
	writeJSON(w, status, movementResponse{
		Message: message,
		ID:      result.Inventory.ID,
		Units:   result.Inventory.Units,
	})
}

func (h *Handlers) WithdrawInventory(w http.ResponseWriter, r *http.Request) {
	var req stockMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	hospitalID, bloodType, units, message := req.validate()
	if message != "" {
		writeError(w, http.StatusBadRequest, "invalid_request", message)
		return
	}

	row, err := h.Ledger.Debit(r.Context(), inventorydomain.DebitInput{
		HospitalID: hospitalID,
		BloodType:  bloodType,
		Units:      units,
	})
	if err != nil {
		h.writeLedgerError(w, "inventory.debit", err, "hospital_id", hospitalID, "blood_type", bloodType, "units", units)
		return
	}

	writeJSON(w, http.StatusOK, movementResponse{
		Message: "Inventory withdrawn successfully",
		ID:      row.ID,
		Units:   row.Units,
	})
}
