package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	admindomain "bloodbank/internal/domain/admin"
	"bloodbank/pkg/logger"
)

type contextKey int

const adminKey contextKey = iota

// Authenticator verifies admin credentials; *admin.Service satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*admindomain.AdminUser, error)
}

type Admin struct {
	ID         int64
	Email      string
	Name       string
	HospitalID *int64
}

// AdminAuth gates routes behind HTTP Basic credentials checked against the
// admin accounts. When disabled every request passes through untouched.
type AdminAuth struct {
	admins  Authenticator
	enabled bool
	log     logger.Logger
}

func NewAdminAuth(admins Authenticator, enabled bool, log logger.Logger) *AdminAuth {
	return &AdminAuth{admins: admins, enabled: enabled, log: log}
}

func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled {
			next.ServeHTTP(w, r)
			return
		}

		email, password, ok := r.BasicAuth()
		if !ok {
			unauthorized(w)
			return
		}

		user, err := a.admins.Login(r.Context(), email, password)
		if err != nil {
			if errors.Is(err, admindomain.ErrInvalidCredentials) || errors.Is(err, admindomain.ErrMissingFields) {
				a.log.BusinessError("auth: rejected credentials", err, "path", r.URL.Path)
				unauthorized(w)
				return
			}
			a.log.InternalError("auth: credential check failed", err, "path", r.URL.Path)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		ctx := WithAdmin(r.Context(), Admin{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			HospitalID: user.HospitalID,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="bloodbank", charset="UTF-8"`)
	writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
}

func WithAdmin(ctx context.Context, admin Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

func AdminFromContext(ctx context.Context) (Admin, bool) {
	admin, ok := ctx.Value(adminKey).(Admin)
	if !ok || admin.ID == 0 {
		return Admin{}, false
	}
	return admin, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
