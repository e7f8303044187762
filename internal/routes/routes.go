package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"otprental/internal/handlers"
	"otprental/internal/middleware"
	"otprental/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	resetHandler *handlers.PasswordResetHandler,
	walletHandler *handlers.WalletHandler,
	authService services.AuthService,
) *gin.Engine {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// ---- public
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/forgot-password", resetHandler.ForgotPassword)
	r.POST("/reset-password", resetHandler.ResetPassword)

	// ---- protected
	auth := r.Group("/", middleware.AuthMiddleware(authService))
	{
		auth.GET("/me", authHandler.Me)
		auth.GET("/profile", authHandler.Me)
		auth.GET("/dashboard", authHandler.Me)

		wallet := auth.Group("/wallet")
		{
			wallet.POST("/add", walletHandler.Add)
			wallet.POST("/deduct", walletHandler.Deduct)
			wallet.GET("/balance", walletHandler.Balance)
			wallet.GET("/history", walletHandler.History)
			wallet.GET("/statement", walletHandler.Statement)
		}
	}

	return r
}
