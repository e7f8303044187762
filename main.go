package main

import "otprental/internal/app"

// @title           OTP Rental API
// @version         1.0
// @description     Authentication and wallet backend: signup/login, OTP-based password reset, wallet ledger.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}
