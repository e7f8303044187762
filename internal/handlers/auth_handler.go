package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"otprental/internal/models"
	"otprental/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService}
}

// @Summary      Register a new account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        signup  body      models.SignupRequest  true  "Signup data"
// @Success      201     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Failure      500     {object}  map[string]interface{}
// @Router       /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please provide name, email, and password")
		return
	}

	user, err := h.userService.Signup(req.Name, req.Email, req.Mobile, req.Password)
	if err != nil {
		if err == services.ErrEmailExists {
			fail(c, http.StatusBadRequest, "User already exists with this email")
			return
		}
		log.Printf("[auth][signup] service error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error during signup")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Signup successful! Please login with your credentials.",
		"user":    user, // PasswordHash is json:"-", never leaves
	})
}

// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Login data"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userService.GetUserByEmail(req.Email)
	if err != nil || user == nil {
		log.Printf("[auth][login] user not found email=%q", req.Email)
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		log.Printf("[auth][login] password mismatch user_id=%d", user.ID)
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("[auth][login] sign token failed user_id=%d: %v", user.ID, err)
		fail(c, http.StatusInternalServerError, "Failed to generate access token")
		return
	}
	log.Printf("[auth][login] success user_id=%d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// @Summary      Current user profile
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Access token required")
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil || user == nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
