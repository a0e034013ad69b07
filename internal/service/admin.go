package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/openfab/reservation-server/internal/model"
	"github.com/openfab/reservation-server/internal/repository"
	"github.com/openfab/reservation-server/internal/utils"
)

// ErrInvalidCredentials is returned by Login when the username or password
// does not match the seeded account. The two cases are indistinguishable to
// the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminAccounts is the persistence contract for admin accounts.
// *repository.AdminRepo satisfies it.
type AdminAccounts interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	Create(ctx context.Context, username, passwordHash string) error
}

// AdminService seeds and authenticates the single administrator account.
type AdminService struct {
	accounts   AdminAccounts
	jwtSecret  string
	ttlMinutes int
	bcryptCost int
}

// NewAdminService builds an AdminService issuing tokens with the given
// secret and TTL.
func NewAdminService(accounts AdminAccounts, jwtSecret string, ttlMinutes, bcryptCost int) *AdminService {
	return &AdminService{
		accounts:   accounts,
		jwtSecret:  jwtSecret,
		ttlMinutes: ttlMinutes,
		bcryptCost: bcryptCost,
	}
}

// EnsureAdmin creates the reserved admin account if it does not exist yet.
// The bootstrap is idempotent: when an account with the username is already
// present, nothing is written. A uniqueness violation from a concurrent
// seed is treated as already-present.
func (s *AdminService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.accounts.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	log.Printf("seeding admin user %q", username)
	if err := s.accounts.Create(ctx, username, hash); err != nil {
		if _, getErr := s.accounts.GetByUsername(ctx, username); getErr == nil {
			return nil
		}
		return err
	}
	return nil
}

// Login verifies the credentials against the stored bcrypt hash and, on
// success, returns a signed admin token and its expiry.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if !utils.VerifyPassword(account.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	tok, err := utils.NewAdminToken(s.jwtSecret, account.Username, s.ttlMinutes)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok.Token, tok.Exp, nil
}
