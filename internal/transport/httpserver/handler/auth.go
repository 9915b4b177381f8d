package handler

import (
	"errors"
	"net/http"

	admindomain "bloodbank/internal/domain/admin"
	"bloodbank/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url"`
}

type meResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	HospitalID *int64 `json:"hospital_id"`
}

type signupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	HospitalID *int64 `json:"hospital_id"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	admin, err := h.Admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, admindomain.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		case errors.Is(err, admindomain.ErrInvalidCredentials):
			h.log.BusinessError("auth.login: invalid credentials", err)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		default:
			h.log.InternalError("auth.login: lookup failed", err)
			writeInternal(w)
		}
		return
	}

	h.log.Info("auth.login: admin signed in", "admin_id", admin.ID)
	writeJSON(w, http.StatusOK, loginResponse{
		Message:     "Login successful",
		RedirectURL: h.loginRedirectURL,
	})
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	admin, err := h.Admins.Signup(r.Context(), admindomain.SignupInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		HospitalID: req.HospitalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, admindomain.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "invalid_request", "name, email and password are required")
		case errors.Is(err, admindomain.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, "password_too_short", "password is too short")
		case errors.Is(err, admindomain.ErrPasswordTooLong):
			writeError(w, http.StatusBadRequest, "password_too_long", "password is too long")
		case errors.Is(err, admindomain.ErrEmailTaken):
			h.log.BusinessError("auth.signup: email taken", err)
			writeError(w, http.StatusBadRequest, "email_taken", "email already exists")
		case errors.Is(err, admindomain.ErrUnknownHospital):
			h.log.BusinessError("auth.signup: unknown hospital", err, "hospital_id", req.HospitalID)
			writeError(w, http.StatusBadRequest, "unknown_reference", "hospital does not exist")
		default:
			h.log.InternalError("auth.signup: create admin failed", err)
			writeInternal(w)
		}
		return
	}

	h.log.Info("auth.signup: admin created", "admin_id", admin.ID)
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Signup successful"})
}

// Me returns the admin resolved by the auth gate. With the gate disabled no
// admin is attached and the caller gets 401.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "no authenticated admin")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:         admin.ID,
		Name:       admin.Name,
		Email:      admin.Email,
		HospitalID: admin.HospitalID,
	})
}
