package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"reyan-luxe/internal/model"
	"reyan-luxe/internal/notifier"
	"reyan-luxe/internal/repository"

	"github.com/rs/zerolog"
)

// otpTTL is how long a one-time code stays valid.
const otpTTL = 5 * time.Minute

// accountService implements AccountService.
type accountService struct {
	userRepo repository.UserRepository
	notifier notifier.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAccountService creates a new account service.
func NewAccountService(userRepo repository.UserRepository, n notifier.Notifier, logger zerolog.Logger) AccountService {
	return &accountService{
		userRepo: userRepo,
		notifier: n,
		logger:   logger.With().Str("service", "account").Logger(),
		now:      time.Now,
	}
}

// SendOTP generates a fresh six-digit code, replaces any previous one, and
// delivers it by email and, when the user has a phone number, by SMS.
func (s *accountService) SendOTP(ctx context.Context, email string) error {
	if email == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.userRepo.UpsertOTP(ctx, user.ID, code); err != nil {
		return err
	}

	phone := ""
	if user.PhoneNumber != nil {
		phone = *user.PhoneNumber
	}
	s.notifier.SendOTP(ctx, user.Email, phone, code)

	s.logger.Info().Int64("user_id", user.ID).Msg("OTP sent")
	return nil
}

// VerifyOTP checks the code for the user with the given email.
func (s *accountService) VerifyOTP(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "email and OTP are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	otp, err := s.userRepo.GetOTP(ctx, user.ID, code)
	if err != nil {
		return err
	}
	if otp == nil {
		return model.ErrInvalidOTP
	}

	if s.now().Sub(otp.CreatedAt) > otpTTL {
		return model.ErrExpiredOTP
	}

	if err := s.userRepo.MarkOTPVerified(ctx, otp.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("OTP verified")
	return nil
}

// generateOTPCode returns six cryptographically random digits.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
