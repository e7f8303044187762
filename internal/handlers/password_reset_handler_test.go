package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otprental/internal/services"
)

func TestPasswordResetHandler_ForgotPassword(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		requested := ""
		resets := &mockResetService{
			RequestResetFunc: func(email string) error {
				requested = email
				return nil
			},
		}
		tr := newTestRouter(&mockUserService{}, resets, &mockWalletService{})

		w := tr.do(t, http.MethodPost, "/forgot-password", "", gin.H{"email": "a@x.com"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "a@x.com", requested)
		assert.Equal(t, true, decodeBody(t, w)["success"])
	})

	t.Run("invalid email format never reaches the service", func(t *testing.T) {
		called := false
		resets := &mockResetService{
			RequestResetFunc: func(email string) error {
				called = true
				return nil
			},
		}
		tr := newTestRouter(&mockUserService{}, resets, &mockWalletService{})

		for _, email := range []string{"not-an-email", "a@b", "a b@x.com", "@x.com"} {
			w := tr.do(t, http.MethodPost, "/forgot-password", "", gin.H{"email": email})
			assert.Equal(t, http.StatusBadRequest, w.Code, "email=%q", email)
		}
		assert.False(t, called)
	})

	t.Run("unknown account", func(t *testing.T) {
		resets := &mockResetService{
			RequestResetFunc: func(email string) error { return services.ErrUserNotFound },
		}
		tr := newTestRouter(&mockUserService{}, resets, &mockWalletService{})

		w := tr.do(t, http.MethodPost, "/forgot-password", "", gin.H{"email": "a@x.com"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delivery failure", func(t *testing.T) {
		resets := &mockResetService{
			RequestResetFunc: func(email string) error { return services.ErrDeliveryFailed },
		}
		tr := newTestRouter(&mockUserService{}, resets, &mockWalletService{})

		w := tr.do(t, http.MethodPost, "/forgot-password", "", gin.H{"email": "a@x.com"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["success"])
	})
}

func TestPasswordResetHandler_ResetPassword(t *testing.T) {
	body := func(otp string) gin.H {
		return gin.H{"email": "a@x.com", "otp": otp, "newPassword": "secret2"}
	}

	t.Run("ok", func(t *testing.T) {
		tr := newTestRouter(&mockUserService{}, &mockResetService{}, &mockWalletService{})

		w := tr.do(t, http.MethodPost, "/reset-password", "", body("123456"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Password reset successfully", decodeBody(t, w)["message"])
	})

	t.Run("malformed OTP rejected before the service", func(t *testing.T) {
		called := false
		resets := &mockResetService{
			ResetPasswordFunc: func(email, otp, newPassword string) error {
				called = true
				return nil
			},
		}
		tr := newTestRouter(&mockUserService{}, resets, &mockWalletService{})

		for _, otp := range []string{"12345", "1234567", "12345a", "12 456", "ABCDEF"} {
			w := tr.do(t, http.MethodPost, "/reset-password", "", body(otp))
			assert.Equal(t, http.StatusBadRequest, w.Code, "otp=%q", otp)
			assert.Equal(t, "OTP must be 6 digits", decodeBody(t, w)["message"])
		}
		assert.False(t, called)
	})

	t.Run("service errors map to messages", func(t *testing.T) {
		cases := []struct {
			err     error
			status  int
			message string
		}{
			{services.ErrNoOTPRequested, http.StatusBadRequest, "No OTP requested"},
			{services.ErrOTPExpired, http.StatusBadRequest, "OTP expired"},
			{services.ErrOTPInvalid, http.StatusBadRequest, "Invalid OTP"},
			{services.ErrWeakPassword, http.StatusBadRequest, "Password must be at least 6 characters long"},
		}
		for _, tc := range cases {
			resets := &mockResetService{
				ResetPasswordFunc: func(email, otp, newPassword string) error { return tc.err },
			}
			tr := newTestRouter(&mockUserService{}, resets, &mockWalletService{})

			w := tr.do(t, http.MethodPost, "/reset-password", "", body("123456"))
			assert.Equal(t, tc.status, w.Code, tc.err)
			assert.Equal(t, tc.message, decodeBody(t, w)["message"], tc.err)
		}
	})
}
