package controllers

import (
	"os"
	"time"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// CreateSampleAdmin seeds the platform administrator on first boot
func CreateSampleAdmin() error {
	db := config.DB

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Platform",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Seeded platform admin: %s", email)
	return nil
}

// POST /v1/admin/login
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	db := config.DB
	var admin models.Admin
	if err := db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogSecurity("Admin login attempt for unknown email: %s from %s", req.Email, c.ClientIP())
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		utils.LogSecurity("Failed admin login for %s from %s", req.Email, c.ClientIP())
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !admin.IsActive {
		utils.Forbidden(c, "Account is inactive")
		return
	}

	db.Model(&admin).Update("last_login", time.Now())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"exp":      time.Now().Add(12 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		utils.LogError("Failed to sign admin token: %v", err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token": signed,
		"admin": gin.H{
			"id":         admin.ID,
			"email":      admin.Email,
			"first_name": admin.FirstName,
			"last_name":  admin.LastName,
		},
	})
}
