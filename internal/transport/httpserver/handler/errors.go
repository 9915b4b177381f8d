package handler

import (
	"errors"
	"net/http"

	inventorydomain "bloodbank/internal/domain/inventory"
)

// writeLedgerError maps inventory ledger failures onto the HTTP error envelope.
// Refusals log at warn, store failures at error; callers add context via args.
func (h *Handlers) writeLedgerError(w http.ResponseWriter, operation string, err error, args ...any) {
	switch {
	case errors.Is(err, inventorydomain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, inventorydomain.ErrInsufficientStock):
		h.log.BusinessError(operation+": insufficient stock", err, args...)
		writeError(w, http.StatusBadRequest, "insufficient_stock", "insufficient stock")
	case errors.Is(err, inventorydomain.ErrStockOverflow):
		h.log.BusinessError(operation+": stock overflow", err, args...)
		writeError(w, http.StatusBadRequest, "stock_overflow", "stock would exceed the maximum unit count")
	case errors.Is(err, inventorydomain.ErrUnknownReference):
		h.log.BusinessError(operation+": unknown reference", err, args...)
		writeError(w, http.StatusBadRequest, "unknown_reference", "referenced hospital, donor or recipient does not exist")
	case errors.Is(err, inventorydomain.ErrDonorNotFound):
		writeError(w, http.StatusNotFound, "donor_not_found", "donor not found")
	case errors.Is(err, inventorydomain.ErrRecipientNotFound):
		writeError(w, http.StatusNotFound, "recipient_not_found", "recipient not found")
	case errors.Is(err, inventorydomain.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "request_not_found", "blood request not found")
	case errors.Is(err, inventorydomain.ErrRequestNotPending):
		h.log.BusinessError(operation+": request not pending", err, args...)
		writeError(w, http.StatusConflict, "request_not_pending", "blood request is not pending")
	default:
		h.log.InternalError(operation+": store failure", err, args...)
		writeInternal(w)
	}
}
