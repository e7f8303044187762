package services

import (
	"errors"
	"io"
	"log"

	"otprental/internal/models"
	"otprental/internal/pdf"
	"otprental/internal/repositories"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")

	// surfaced from the ledger's conditional debit
	ErrInsufficientBalance = repositories.ErrInsufficientBalance
)

// Default ledger descriptions when the client sends none.
const (
	defaultCreditDescription = "Wallet Top-up"
	defaultDebitDescription  = "Deduction"
)

type WalletService interface {
	Credit(userID int, amount int64, description string) (int64, error)
	Debit(userID int, amount int64, description string) (int64, error)
	GetBalance(userID int) (int64, error)
	GetHistory(userID int) ([]*models.WalletTransaction, error)
	WriteStatement(user *models.User, w io.Writer) error
}

type walletService struct {
	repo       repositories.WalletRepository
	statements pdf.StatementGenerator
}

func NewWalletService(repo repositories.WalletRepository, statements pdf.StatementGenerator) WalletService {
	return &walletService{repo: repo, statements: statements}
}

func (s *walletService) Credit(userID int, amount int64, description string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if description == "" {
		description = defaultCreditDescription
	}
	balance, err := s.repo.Credit(userID, amount, description)
	if err != nil {
		return 0, err
	}
	log.Printf("[wallet][credit] user_id=%d amount=%d balance=%d", userID, amount, balance)
	return balance, nil
}

func (s *walletService) Debit(userID int, amount int64, description string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if description == "" {
		description = defaultDebitDescription
	}
	balance, err := s.repo.Debit(userID, amount, description)
	if err != nil {
		return 0, err
	}
	log.Printf("[wallet][debit] user_id=%d amount=%d balance=%d", userID, amount, balance)
	return balance, nil
}

func (s *walletService) GetBalance(userID int) (int64, error) {
	return s.repo.GetBalance(userID)
}

func (s *walletService) GetHistory(userID int) ([]*models.WalletTransaction, error) {
	return s.repo.ListTransactions(userID)
}

// WriteStatement renders a PDF of the current balance and full transaction
// history to w.
func (s *walletService) WriteStatement(user *models.User, w io.Writer) error {
	balance, err := s.repo.GetBalance(user.ID)
	if err != nil {
		return err
	}
	txs, err := s.repo.ListTransactions(user.ID)
	if err != nil {
		return err
	}
	return s.statements.Generate(pdf.StatementData{
		UserName:     user.Name,
		UserEmail:    user.Email,
		Balance:      balance,
		Transactions: txs,
	}, w)
}
