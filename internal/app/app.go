package app

import (
	"net/http"

	"bloodbank/internal/config"
	"bloodbank/internal/db"
	admindomain "bloodbank/internal/domain/admin"
	donordomain "bloodbank/internal/domain/donor"
	hospitaldomain "bloodbank/internal/domain/hospital"
	inventorydomain "bloodbank/internal/domain/inventory"
	recipientdomain "bloodbank/internal/domain/recipient"
	"bloodbank/internal/metrics"
	adminrepo "bloodbank/internal/repository/postgres/admin"
	donorrepo "bloodbank/internal/repository/postgres/donor"
	hospitalrepo "bloodbank/internal/repository/postgres/hospital"
	inventoryrepo "bloodbank/internal/repository/postgres/inventory"
	recipientrepo "bloodbank/internal/repository/postgres/recipient"
	"bloodbank/internal/transport/httpserver"
	"bloodbank/internal/transport/httpserver/handler"
	"bloodbank/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}

	router, err := NewRouter(cfg, dbConn, log)
	if err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// NewRouter assembles repositories, services and handlers on top of an open
// database handle.
func NewRouter(cfg config.Config, dbConn *gorm.DB, log logger.Logger) (http.Handler, error) {
	m := metrics.New()

	admins, err := admindomain.NewService(adminrepo.NewPostgres(dbConn), admindomain.Options{
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		BcryptCost:        cfg.Auth.BcryptCost,
	})
	if err != nil {
		return nil, err
	}
	hospitals := hospitaldomain.NewService(hospitalrepo.NewPostgres(dbConn))
	donors := donordomain.NewService(donorrepo.NewPostgres(dbConn))
	recipients := recipientdomain.NewService(recipientrepo.NewPostgres(dbConn))
	ledger := inventorydomain.NewService(inventoryrepo.NewPostgres(dbConn), m)

	handlers := handler.New(admins, hospitals, donors, recipients, ledger, handler.Options{
		LoginRedirectURL: cfg.Auth.LoginRedirectURL,
	}, log)

	log.Info("app: initializing router", "auth_required", cfg.Auth.Required, "metrics_enabled", cfg.Metrics.Enabled)
	return httpserver.NewRouter(cfg, handlers, admins, m, log), nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	return db.Close(a.db)
}
