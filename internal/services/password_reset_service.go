package services

import (
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"otprental/internal/repositories"
	"otprental/internal/utils"
)

var (
	ErrUserNotFound   = errors.New("no account found with this email address")
	ErrNoOTPRequested = errors.New("no OTP requested")
	ErrOTPExpired     = errors.New("OTP expired")
	ErrOTPInvalid     = errors.New("invalid OTP")
	ErrWeakPassword   = errors.New("password must be at least 6 characters long")
	ErrDeliveryFailed = errors.New("failed to send OTP email")
)

const minPasswordLen = 6

// PasswordResetService drives the reset-OTP lifecycle: a user has no pending
// code, then one pending code with a deadline, and the code disappears on
// use, on expiry, or on failed delivery.
type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(email, otp, newPassword string) error
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	emails   EmailService
	auth     AuthService
	otpTTL   time.Duration
}

func NewPasswordResetService(userRepo repositories.UserRepository, emails EmailService, auth AuthService, otpTTL time.Duration) PasswordResetService {
	if otpTTL <= 0 {
		otpTTL = 15 * time.Minute
	}
	return &passwordResetService{
		userRepo: userRepo,
		emails:   emails,
		auth:     auth,
		otpTTL:   otpTTL,
	}
}

// RequestReset generates a fresh 6-digit code for the account, replacing any
// previously pending one, and emails it. If the email cannot be delivered the
// stored code is invalidated so a code the user never saw cannot linger.
func (s *passwordResetService) RequestReset(email string) error {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	otp, err := utils.NewOTP()
	if err != nil {
		return err
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.otpTTL)
	if err := s.userRepo.SetResetOTP(user.ID, string(codeHash), expiresAt); err != nil {
		return err
	}

	if err := s.emails.SendOTPEmail(user.Email, user.Name, otp, s.otpTTL); err != nil {
		log.Printf("[password-reset][request] delivery failed for user_id=%d: %v", user.ID, err)
		if clearErr := s.userRepo.ClearResetOTP(user.ID); clearErr != nil {
			log.Printf("[password-reset][request] clear OTP after failed delivery user_id=%d: %v", user.ID, clearErr)
		}
		return ErrDeliveryFailed
	}

	log.Printf("[password-reset][request] OTP sent user_id=%d expires_at=%s", user.ID, expiresAt.Format(time.RFC3339))
	return nil
}

// ResetPassword verifies the pending code and replaces the password. The code
// is single use: a successful reset burns it, and an expired one is cleared
// on sight. A wrong code leaves the pending one intact until expiry.
func (s *passwordResetService) ResetPassword(email, otp, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	user, err := s.userRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoOTPRequested
		}
		return err
	}
	if user.ResetOTPHash == nil || user.ResetOTPExpiresAt == nil {
		return ErrNoOTPRequested
	}
	if time.Now().After(*user.ResetOTPExpiresAt) {
		if err := s.userRepo.ClearResetOTP(user.ID); err != nil {
			return err
		}
		return ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.ResetOTPHash), []byte(otp)); err != nil {
		return ErrOTPInvalid
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.ConsumePasswordReset(user.ID, hash); err != nil {
		return err
	}
	log.Printf("[password-reset][reset] OK user_id=%d", user.ID)
	return nil
}
