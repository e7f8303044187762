package services

import (
	"database/sql"
	"time"

	"otprental/internal/models"
)

// mockUserRepository simulates the credential store during testing.
type mockUserRepository struct {
	CreateFunc               func(user *models.User) error
	GetByIDFunc              func(id int) (*models.User, error)
	GetByEmailFunc           func(email string) (*models.User, error)
	UpdatePasswordFunc       func(id int, hash string) error
	SetResetOTPFunc          func(id int, codeHash string, expiresAt time.Time) error
	ClearResetOTPFunc        func(id int) error
	ConsumePasswordResetFunc func(id int, hash string) error
}

func (m *mockUserRepository) Create(user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) GetByID(id int) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepository) GetByEmail(email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(email)
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepository) UpdatePassword(id int, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(id, hash)
	}
	return nil
}

func (m *mockUserRepository) SetResetOTP(id int, codeHash string, expiresAt time.Time) error {
	if m.SetResetOTPFunc != nil {
		return m.SetResetOTPFunc(id, codeHash, expiresAt)
	}
	return nil
}

func (m *mockUserRepository) ClearResetOTP(id int) error {
	if m.ClearResetOTPFunc != nil {
		return m.ClearResetOTPFunc(id)
	}
	return nil
}

func (m *mockUserRepository) ConsumePasswordReset(id int, hash string) error {
	if m.ConsumePasswordResetFunc != nil {
		return m.ConsumePasswordResetFunc(id, hash)
	}
	return nil
}

// mockWalletRepository simulates the ledger during testing.
type mockWalletRepository struct {
	CreateWalletFunc     func(userID int) error
	GetBalanceFunc       func(userID int) (int64, error)
	CreditFunc           func(userID int, amount int64, description string) (int64, error)
	DebitFunc            func(userID int, amount int64, description string) (int64, error)
	ListTransactionsFunc func(userID int) ([]*models.WalletTransaction, error)
}

func (m *mockWalletRepository) CreateWallet(userID int) error {
	if m.CreateWalletFunc != nil {
		return m.CreateWalletFunc(userID)
	}
	return nil
}

func (m *mockWalletRepository) GetBalance(userID int) (int64, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(userID)
	}
	return 0, nil
}

func (m *mockWalletRepository) Credit(userID int, amount int64, description string) (int64, error) {
	if m.CreditFunc != nil {
		return m.CreditFunc(userID, amount, description)
	}
	return amount, nil
}

func (m *mockWalletRepository) Debit(userID int, amount int64, description string) (int64, error) {
	if m.DebitFunc != nil {
		return m.DebitFunc(userID, amount, description)
	}
	return 0, nil
}

func (m *mockWalletRepository) ListTransactions(userID int) ([]*models.WalletTransaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(userID)
	}
	return nil, nil
}

// mockEmailService records deliveries and can be made to fail.
type mockEmailService struct {
	WelcomeFunc func(email, name string) error
	OTPFunc     func(email, name, otp string, ttl time.Duration) error
}

func (m *mockEmailService) SendWelcomeEmail(email, name string) error {
	if m.WelcomeFunc != nil {
		return m.WelcomeFunc(email, name)
	}
	return nil
}

func (m *mockEmailService) SendOTPEmail(email, name, otp string, ttl time.Duration) error {
	if m.OTPFunc != nil {
		return m.OTPFunc(email, name, otp, ttl)
	}
	return nil
}
