package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"otprental/internal/middleware"
	"otprental/internal/models"
	"otprental/internal/services"
)

type mockUserService struct {
	SignupFunc         func(name, email, mobile, password string) (*models.User, error)
	GetUserByIDFunc    func(id int) (*models.User, error)
	GetUserByEmailFunc func(email string) (*models.User, error)
}

func (m *mockUserService) Signup(name, email, mobile, password string) (*models.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(name, email, mobile, password)
	}
	return &models.User{ID: 1, Name: name, Email: email, Mobile: mobile}, nil
}

func (m *mockUserService) GetUserByID(id int) (*models.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(id)
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, sql.ErrNoRows
}

type mockResetService struct {
	RequestResetFunc  func(email string) error
	ResetPasswordFunc func(email, otp, newPassword string) error
}

func (m *mockResetService) RequestReset(email string) error {
	if m.RequestResetFunc != nil {
		return m.RequestResetFunc(email)
	}
	return nil
}

func (m *mockResetService) ResetPassword(email, otp, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(email, otp, newPassword)
	}
	return nil
}

type mockWalletService struct {
	CreditFunc         func(userID int, amount int64, description string) (int64, error)
	DebitFunc          func(userID int, amount int64, description string) (int64, error)
	GetBalanceFunc     func(userID int) (int64, error)
	GetHistoryFunc     func(userID int) ([]*models.WalletTransaction, error)
	WriteStatementFunc func(user *models.User, w io.Writer) error
}

func (m *mockWalletService) Credit(userID int, amount int64, description string) (int64, error) {
	if m.CreditFunc != nil {
		return m.CreditFunc(userID, amount, description)
	}
	return amount, nil
}

func (m *mockWalletService) Debit(userID int, amount int64, description string) (int64, error) {
	if m.DebitFunc != nil {
		return m.DebitFunc(userID, amount, description)
	}
	return 0, nil
}

func (m *mockWalletService) GetBalance(userID int) (int64, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(userID)
	}
	return 0, nil
}

func (m *mockWalletService) GetHistory(userID int) ([]*models.WalletTransaction, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(userID)
	}
	return nil, nil
}

func (m *mockWalletService) WriteStatement(user *models.User, w io.Writer) error {
	if m.WriteStatementFunc != nil {
		return m.WriteStatementFunc(user, w)
	}
	return nil
}

// testRouter wires the handlers into a gin engine with a real auth service,
// so middleware behavior is exercised too.
type testRouter struct {
	engine *gin.Engine
	auth   services.AuthService
}

func newTestRouter(users *mockUserService, resets *mockResetService, wallets *mockWalletService) *testRouter {
	gin.SetMode(gin.TestMode)
	auth := services.NewAuthService("test-secret", time.Hour)

	r := gin.New()
	authHandler := NewAuthHandler(users, auth)
	resetHandler := NewPasswordResetHandler(resets)
	walletHandler := NewWalletHandler(wallets, users)

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/forgot-password", resetHandler.ForgotPassword)
	r.POST("/reset-password", resetHandler.ResetPassword)

	protected := r.Group("/", middleware.AuthMiddleware(auth))
	{
		protected.GET("/me", authHandler.Me)
		wallet := protected.Group("/wallet")
		{
			wallet.POST("/add", walletHandler.Add)
			wallet.POST("/deduct", walletHandler.Deduct)
			wallet.GET("/balance", walletHandler.Balance)
			wallet.GET("/history", walletHandler.History)
			wallet.GET("/statement", walletHandler.Statement)
		}
	}

	return &testRouter{engine: r, auth: auth}
}

func (tr *testRouter) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}

func (tr *testRouter) token(t *testing.T, userID int, email string) string {
	t.Helper()
	token, err := tr.auth.GenerateToken(userID, email)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
