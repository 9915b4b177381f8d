package handler

import (
	"errors"
	"net/http"

	"bloodbank/internal/domain/bloodtype"
	recipientdomain "bloodbank/internal/domain/recipient"
)

type createRecipientRequest struct {
	Name        string  `json:"name"`
	BloodType   string  `json:"blood_type"`
	HospitalID  *int64  `json:"hospital_id"`
	ContactInfo *string `json:"contact_info"`
	RequestDate *string `json:"request_date"`
}

type recipientResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BloodType   string  `json:"blood_type"`
	HospitalID  *int64  `json:"hospital_id"`
	ContactInfo *string `json:"contact_info"`
	RequestDate *string `json:"request_date"`
}

func toRecipientResponse(recipient recipientdomain.Recipient) recipientResponse {
	return recipientResponse{
		ID:          recipient.ID,
		Name:        recipient.Name,
		BloodType:   recipient.BloodType,
		HospitalID:  recipient.HospitalID,
		ContactInfo: recipient.ContactInfo,
		RequestDate: formatOptionalDate(recipient.RequestDate),
	}
}

func (h *Handlers) ListRecipients(w http.ResponseWriter, r *http.Request) {
	recipients, err := h.Recipients.ListRecipients(r.Context())
	if err != nil {
		h.log.InternalError("recipients.list: list failed", err)
		writeInternal(w)
		return
	}

	response := make([]recipientResponse, 0, len(recipients))
	for _, recipient := range recipients {
		response = append(response, toRecipientResponse(recipient))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid recipient id")
		return
	}

	recipient, err := h.Recipients.GetRecipient(r.Context(), id)
	if err != nil {
		if errors.Is(err, recipientdomain.ErrRecipientNotFound) {
			writeError(w, http.StatusNotFound, "recipient_not_found", "recipient not found")
			return
		}
		h.log.InternalError("recipients.get: get failed", err, "recipient_id", id)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toRecipientResponse(*recipient))
}

func (h *Handlers) CreateRecipient(w http.ResponseWriter, r *http.Request) {
	var req createRecipientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.HospitalID == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "hospital_id is required")
		return
	}

	requestDate, err := parseOptionalDate(req.RequestDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request_date")
		return
	}

	recipient, err := h.Recipients.CreateRecipient(r.Context(), recipientdomain.CreateInput{
		Name:        req.Name,
		BloodType:   req.BloodType,
		HospitalID:  *req.HospitalID,
		ContactInfo: req.ContactInfo,
		RequestDate: requestDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, recipientdomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		case errors.Is(err, recipientdomain.ErrHospitalRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "hospital_id is required")
		case errors.Is(err, bloodtype.ErrInvalid):
			writeError(w, http.StatusBadRequest, "invalid_request", invalidBloodTypeMessage)
		case errors.Is(err, recipientdomain.ErrUnknownHospital):
			h.log.BusinessError("recipients.create: unknown hospital", err, "hospital_id", *req.HospitalID)
			writeError(w, http.StatusBadRequest, "unknown_reference", "hospital does not exist")
		default:
			h.log.InternalError("recipients.create: create failed", err)
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{Message: "Recipient added successfully", ID: recipient.ID})
}
