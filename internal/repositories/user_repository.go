package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"otprental/internal/models"
)

// ErrEmailTaken is returned by Create when the email unique constraint fires.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(id int, passwordHash string) error

	// reset-OTP transitions; each is a single statement so concurrent
	// requests for the same user cannot interleave half-applied states
	SetResetOTP(id int, codeHash string, expiresAt time.Time) error
	ClearResetOTP(id int) error
	ConsumePasswordReset(id int, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, mobile, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		user.Name,
		user.Email,
		nullIfEmpty(user.Mobile),
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return r.getOne(`WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.getOne(`WHERE email = $1`, email)
}

func (r *userRepository) getOne(where string, arg interface{}) (*models.User, error) {
	q := `
		SELECT id, name, email, mobile, password_hash,
		       reset_otp_hash, reset_otp_expires_at,
		       created_at, updated_at
		FROM users ` + where
	u := &models.User{}
	var (
		mobile  sql.NullString
		otpHash sql.NullString
		otpExp  sql.NullTime
	)
	err := r.DB.QueryRow(q, arg).Scan(
		&u.ID, &u.Name, &u.Email, &mobile, &u.PasswordHash,
		&otpHash, &otpExp,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if mobile.Valid {
		u.Mobile = mobile.String
	}
	if otpHash.Valid {
		s := otpHash.String
		u.ResetOTPHash = &s
	}
	if otpExp.Valid {
		t := otpExp.Time
		u.ResetOTPExpiresAt = &t
	}
	return u, nil
}

func (r *userRepository) UpdatePassword(id int, passwordHash string) error {
	_, err := r.DB.Exec(`
		UPDATE users SET password_hash=$1, updated_at=NOW()
		WHERE id=$2
	`, passwordHash, id)
	return err
}

func (r *userRepository) SetResetOTP(id int, codeHash string, expiresAt time.Time) error {
	// overwrites any pending code: at most one active OTP per user
	_, err := r.DB.Exec(`
		UPDATE users
		SET reset_otp_hash=$1, reset_otp_expires_at=$2, updated_at=NOW()
		WHERE id=$3
	`, codeHash, expiresAt, id)
	return err
}

func (r *userRepository) ClearResetOTP(id int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET reset_otp_hash=NULL, reset_otp_expires_at=NULL, updated_at=NOW()
		WHERE id=$1
	`, id)
	return err
}

func (r *userRepository) ConsumePasswordReset(id int, passwordHash string) error {
	// replace the password and burn the OTP in one statement
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_hash=$1, reset_otp_hash=NULL, reset_otp_expires_at=NULL, updated_at=NOW()
		WHERE id=$2
	`, passwordHash, id)
	return err
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
