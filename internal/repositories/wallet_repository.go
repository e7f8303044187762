package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"otprental/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type WalletRepository interface {
	CreateWallet(userID int) error
	GetBalance(userID int) (int64, error)
	Credit(userID int, amount int64, description string) (int64, error)
	Debit(userID int, amount int64, description string) (int64, error)
	ListTransactions(userID int) ([]*models.WalletTransaction, error)
}

type walletRepository struct {
	DB *sql.DB
}

func NewWalletRepository(db *sql.DB) WalletRepository {
	return &walletRepository{DB: db}
}

func (r *walletRepository) CreateWallet(userID int) error {
	_, err := r.DB.Exec(`
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}

func (r *walletRepository) GetBalance(userID int) (int64, error) {
	var balance int64
	err := r.DB.QueryRow(`SELECT balance FROM wallets WHERE user_id=$1`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, ErrWalletNotFound
	}
	return balance, err
}

// Credit applies the balance increment and the ledger append in one
// transaction. The read-modify-write happens inside the UPDATE itself, so
// concurrent credits never lose updates.
func (r *walletRepository) Credit(userID int, amount int64, description string) (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRow(`
		UPDATE wallets SET balance = balance + $1
		WHERE user_id = $2
		RETURNING balance
	`, amount, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, ErrWalletNotFound
	}
	if err != nil {
		return 0, err
	}

	if err := appendTransaction(tx, userID, models.TxCredit, amount, description); err != nil {
		return 0, err
	}
	return balance, tx.Commit()
}

// Debit is conditional on the resulting balance staying non-negative; the
// database rejects an overdraft atomically rather than us checking first.
func (r *walletRepository) Debit(userID int, amount int64, description string) (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRow(`
		UPDATE wallets SET balance = balance - $1
		WHERE user_id = $2 AND balance >= $1
		RETURNING balance
	`, amount, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		// distinguish "no wallet" from "not enough money"
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id=$1)`, userID).Scan(&exists); err != nil {
			return 0, err
		}
		if !exists {
			return 0, ErrWalletNotFound
		}
		return 0, ErrInsufficientBalance
	}
	if err != nil {
		return 0, err
	}

	if err := appendTransaction(tx, userID, models.TxDebit, amount, description); err != nil {
		return 0, err
	}
	return balance, tx.Commit()
}

func appendTransaction(tx *sql.Tx, userID int, txType string, amount int64, description string) error {
	_, err := tx.Exec(`
		INSERT INTO wallet_transactions (user_id, type, amount, description)
		VALUES ($1, $2, $3, $4)
	`, userID, txType, amount, description)
	if err != nil {
		return fmt.Errorf("append %s transaction: %w", txType, err)
	}
	return nil
}

func (r *walletRepository) ListTransactions(userID int) ([]*models.WalletTransaction, error) {
	const q = `
		SELECT id, user_id, type, amount, description, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.WalletTransaction
	for rows.Next() {
		t := &models.WalletTransaction{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}
