package admin

import "context"

type Repository interface {
	GetAdminByEmail(ctx context.Context, email string) (*AdminUser, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateAdmin maps a unique-email violation to ErrEmailTaken.
	CreateAdmin(ctx context.Context, admin *AdminUser) error
}
