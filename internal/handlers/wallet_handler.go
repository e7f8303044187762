package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"otprental/internal/models"
	"otprental/internal/services"
)

type WalletHandler struct {
	wallets services.WalletService
	users   services.UserService
}

func NewWalletHandler(wallets services.WalletService, users services.UserService) *WalletHandler {
	return &WalletHandler{wallets: wallets, users: users}
}

// @Summary      Add money to wallet
// @Tags         Wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        amount  body      models.WalletAmountRequest  true  "Amount and optional description"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Router       /wallet/add [post]
func (h *WalletHandler) Add(c *gin.Context) {
	h.mutate(c, "credited", h.wallets.Credit)
}

// @Summary      Deduct money from wallet
// @Tags         Wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        amount  body      models.WalletAmountRequest  true  "Amount and optional description"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Router       /wallet/deduct [post]
func (h *WalletHandler) Deduct(c *gin.Context) {
	h.mutate(c, "debited", h.wallets.Debit)
}

func (h *WalletHandler) mutate(c *gin.Context, verb string, op func(int, int64, string) (int64, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Access token required")
		return
	}

	var req models.WalletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	balance, err := op(userID, req.Amount, req.Description)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			fail(c, http.StatusBadRequest, "Invalid amount")
		case services.ErrInsufficientBalance:
			fail(c, http.StatusBadRequest, "Insufficient balance")
		default:
			log.Printf("[wallet][%s] user_id=%d error: %v", verb, userID, err)
			fail(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Wallet %s successfully", verb),
		"balance": balance,
	})
}

// @Summary      Wallet balance
// @Tags         Wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Access token required")
		return
	}

	balance, err := h.wallets.GetBalance(userID)
	if err != nil {
		log.Printf("[wallet][balance] user_id=%d error: %v", userID, err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "balance": balance})
}

// @Summary      Transaction history, newest first
// @Tags         Wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet/history [get]
func (h *WalletHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Access token required")
		return
	}

	txs, err := h.wallets.GetHistory(userID)
	if err != nil {
		log.Printf("[wallet][history] user_id=%d error: %v", userID, err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if txs == nil {
		txs = []*models.WalletTransaction{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": txs})
}

// @Summary      Download wallet statement as PDF
// @Tags         Wallet
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200
// @Router       /wallet/statement [get]
func (h *WalletHandler) Statement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Access token required")
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil || user == nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	var buf bytes.Buffer
	if err := h.wallets.WriteStatement(user, &buf); err != nil {
		log.Printf("[wallet][statement] user_id=%d error: %v", userID, err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=statement_%d.pdf", userID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
