package handler

import (
	admindomain "bloodbank/internal/domain/admin"
	donordomain "bloodbank/internal/domain/donor"
	hospitaldomain "bloodbank/internal/domain/hospital"
	inventorydomain "bloodbank/internal/domain/inventory"
	recipientdomain "bloodbank/internal/domain/recipient"
	"bloodbank/pkg/logger"
)

type Handlers struct {
	Admins     *admindomain.Service
	Hospitals  *hospitaldomain.Service
	Donors     *donordomain.Service
	Recipients *recipientdomain.Service
	Ledger     *inventorydomain.Service

	loginRedirectURL string
	log              logger.Logger
}

type Options struct {
	LoginRedirectURL string
}

func New(admins *admindomain.Service, hospitals *hospitaldomain.Service, donors *donordomain.Service, recipients *recipientdomain.Service, ledger *inventorydomain.Service, opts Options, log logger.Logger) *Handlers {
	redirect := opts.LoginRedirectURL
	if redirect == "" {
		redirect = "/dashboard"
	}
	return &Handlers{
		Admins:           admins,
		Hospitals:        hospitals,
		Donors:           donors,
		Recipients:       recipients,
		Ledger:           ledger,
		loginRedirectURL: redirect,
		log:              log,
	}
}
