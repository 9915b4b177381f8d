package handler

import (
	"errors"
	"net/http"
	"time"

	hospitaldomain "bloodbank/internal/domain/hospital"
	inventorydomain "bloodbank/internal/domain/inventory"
)

type createHospitalRequest struct {
	Name        string  `json:"name"`
	Location    *string `json:"location"`
	ContactInfo *string `json:"contact_info"`
}

type hospitalResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    *string   `json:"location"`
	ContactInfo *string   `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func toHospitalResponse(hospital hospitaldomain.Hospital) hospitalResponse {
	return hospitalResponse{
		ID:          hospital.ID,
		Name:        hospital.Name,
		Location:    hospital.Location,
		ContactInfo: hospital.ContactInfo,
		CreatedAt:   hospital.CreatedAt,
	}
}

func (h *Handlers) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.Hospitals.ListHospitals(r.Context())
	if err != nil {
		h.log.InternalError("hospitals.list: list failed", err)
		writeInternal(w)
		return
	}

	response := make([]hospitalResponse, 0, len(hospitals))
	for _, hospital := range hospitals {
		response = append(response, toHospitalResponse(hospital))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetHospital(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid hospital id")
		return
	}

	hospital, err := h.Hospitals.GetHospital(r.Context(), id)
	if err != nil {
		if errors.Is(err, hospitaldomain.ErrHospitalNotFound) {
			writeError(w, http.StatusNotFound, "hospital_not_found", "hospital not found")
			return
		}
		h.log.InternalError("hospitals.get: get failed", err, "hospital_id", id)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toHospitalResponse(*hospital))
}

func (h *Handlers) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req createHospitalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	hospital, err := h.Hospitals.CreateHospital(r.Context(), hospitaldomain.CreateInput{
		Name:        req.Name,
		Location:    req.Location,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		if errors.Is(err, hospitaldomain.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
			return
		}
		h.log.InternalError("hospitals.create: create failed", err)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{Message: "Hospital added successfully", ID: hospital.ID})
}

func (h *Handlers) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid hospital id")
		return
	}

	if err := h.Hospitals.DeleteHospital(r.Context(), id); err != nil {
		if errors.Is(err, hospitaldomain.ErrHospitalNotFound) {
			writeError(w, http.StatusNotFound, "hospital_not_found", "hospital not found")
			return
		}
		h.log.InternalError("hospitals.delete: delete failed", err, "hospital_id", id)
		writeInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListHospitalInventory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid hospital id")
		return
	}

	if _, err := h.Hospitals.GetHospital(r.Context(), id); err != nil {
		if errors.Is(err, hospitaldomain.ErrHospitalNotFound) {
			writeError(w, http.StatusNotFound, "hospital_not_found", "hospital not found")
			return
		}
		h.log.InternalError("hospitals.inventory: get hospital failed", err, "hospital_id", id)
		writeInternal(w)
		return
	}

	rows, err := h.Ledger.ListInventory(r.Context(), inventorydomain.InventoryFilter{HospitalID: &id})
	if err != nil {
		h.log.InternalError("hospitals.inventory: list failed", err, "hospital_id", id)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponses(rows))
}
