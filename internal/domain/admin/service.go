package admin

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultMinPasswordLength = 6
	maxPasswordBytes         = 72
)

type Service struct {
	repo      Repository
	minLength int
	cost      int
	// decoyHash is compared against when the email is unknown so that a
	// failed login costs the same whether or not the account exists.
	decoyHash []byte
}

func NewService(repo Repository, opts Options) (*Service, error) {
	minLength := opts.MinPasswordLength
	if minLength <= 0 {
		minLength = defaultMinPasswordLength
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, bcrypt.InvalidCostError(cost)
	}

	decoy, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), cost)
	if err != nil {
		return nil, err
	}

	return &Service{repo: repo, minLength: minLength, cost: cost, decoyHash: decoy}, nil
}

func (s *Service) Signup(ctx context.Context, input SignupInput) (*AdminUser, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(input.Password) < s.minLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, err
	}

	admin := AdminUser{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		HospitalID:   input.HospitalID,
	}
	if err := s.repo.CreateAdmin(ctx, &admin); err != nil {
		return nil, err
	}

	return &admin, nil
}

// Login verifies the credentials and returns the matching admin.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AdminUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.decoyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
