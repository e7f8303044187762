package handlers

import (
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"otprental/internal/models"
	"otprental/internal/services"
	"otprental/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type PasswordResetHandler struct {
	resets services.PasswordResetService
}

func NewPasswordResetHandler(resets services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resets: resets}
}

// @Summary      Request a password-reset OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Failure      404     {object}  map[string]interface{}
// @Failure      500     {object}  map[string]interface{}
// @Router       /forgot-password [post]
func (h *PasswordResetHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email is required")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		fail(c, http.StatusBadRequest, "Please enter a valid email address")
		return
	}

	switch err := h.resets.RequestReset(req.Email); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "OTP sent to your email successfully",
		})
	case services.ErrUserNotFound:
		fail(c, http.StatusNotFound, "No account found with this email address")
	case services.ErrDeliveryFailed:
		fail(c, http.StatusInternalServerError, "Failed to send OTP email")
	default:
		log.Printf("[password-reset][forgot] error: %v", err)
		fail(c, http.StatusInternalServerError, "Error sending OTP. Please try again.")
	}
}

// @Summary      Verify OTP and reset password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      models.ResetPasswordRequest  true  "Email, OTP and new password"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      500    {object}  map[string]interface{}
// @Router       /reset-password [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email, OTP, and new password are required")
		return
	}
	// malformed input never reaches the OTP state machine
	if !utils.IsValidOTPFormat(req.OTP) {
		fail(c, http.StatusBadRequest, "OTP must be 6 digits")
		return
	}

	switch err := h.resets.ResetPassword(req.Email, req.OTP, req.NewPassword); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Password reset successfully",
		})
	case services.ErrNoOTPRequested:
		fail(c, http.StatusBadRequest, "No OTP requested")
	case services.ErrOTPExpired:
		fail(c, http.StatusBadRequest, "OTP expired")
	case services.ErrOTPInvalid:
		fail(c, http.StatusBadRequest, "Invalid OTP")
	case services.ErrWeakPassword:
		fail(c, http.StatusBadRequest, "Password must be at least 6 characters long")
	default:
		log.Printf("[password-reset][reset] error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error during password reset")
	}
}
