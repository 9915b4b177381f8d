package httpserver

import (
	"net/http"
	"time"

	"bloodbank/internal/config"
	"bloodbank/internal/metrics"
	"bloodbank/internal/transport/httpserver/handler"
	authmw "bloodbank/internal/transport/httpserver/middleware"
	"bloodbank/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every endpoint. m may be nil, in which case no metrics
// middleware or exposition route is mounted.
func NewRouter(cfg config.Config, handlers *handler.Handlers, auth authmw.Authenticator, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))
	if m != nil {
		r.Use(m.Middleware)
	}

	r.Get("/health", handlers.Health)
	if m != nil && cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, m.Handler())
	}

	r.Post("/login", handlers.Login)
	r.Post("/signup", handlers.Signup)

	gate := authmw.NewAdminAuth(auth, cfg.Auth.Required, log)
	r.Group(func(r chi.Router) {
		r.Use(gate.Middleware)

		r.Get("/me", handlers.Me)

		r.Get("/donors", handlers.ListDonors)
		r.Post("/donors", handlers.CreateDonor)
		r.Get("/donors/{id}", handlers.GetDonor)

		r.Get("/hospitals", handlers.ListHospitals)
		r.Post("/hospitals", handlers.CreateHospital)
		r.Get("/hospitals/{id}", handlers.GetHospital)
		r.Delete("/hospitals/{id}", handlers.DeleteHospital)
		r.Get("/hospitals/{id}/inventory", handlers.ListHospitalInventory)

		r.Get("/inventory", handlers.ListInventory)
		r.Post("/inventory", handlers.AddInventory)
		r.Post("/inventory/withdraw", handlers.WithdrawInventory)

		r.Get("/recipients", handlers.ListRecipients)
		r.Post("/recipients", handlers.CreateRecipient)
		r.Get("/recipients/{id}", handlers.GetRecipient)

		r.Get("/transfers", handlers.ListTransfers)
		r.Post("/transfers", handlers.CreateTransfer)

		r.Get("/donations", handlers.ListDonations)
		r.Post("/donations", handlers.CreateDonation)

		r.Get("/requests", handlers.ListBloodRequests)
		r.Post("/requests", handlers.CreateBloodRequest)
		r.Get("/requests/{id}", handlers.GetBloodRequest)
		r.Post("/requests/{id}/fulfill", handlers.FulfillBloodRequest)
		r.Post("/requests/{id}/reject", handlers.RejectBloodRequest)
	})

	return r
}
