package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

func generateTenantToken(tenantID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id": tenantID,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// POST /v1/auth/register
func RegisterTenant(c *gin.Context) {
	utils.LogInfo("RegisterTenant called")

	var req struct {
		Name     string `json:"name"`
		Slug     string `json:"slug"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.ValidationFailed(c, "name, email and password are required", nil)
		return
	}
	if !utils.ValidateEmail(req.Email) {
		utils.ValidationFailed(c, "email is not valid", nil)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.ValidationFailed(c, err.Error(), nil)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if !utils.ValidateSlug(slug) {
		utils.ValidationFailed(c, "slug must be 3-40 lowercase letters, digits and dashes", nil)
		return
	}

	db := config.DB
	var count int64
	db.Model(&models.Tenant{}).Where("slug = ? OR email = ?", slug, req.Email).Count(&count)
	if count > 0 {
		utils.Conflict(c, "A restaurant with this slug or email already exists", nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	tenant := models.Tenant{
		Name:     req.Name,
		Slug:     slug,
		Email:    req.Email,
		Password: string(hashed),
		Phone:    req.Phone,
	}
	if err := db.Create(&tenant).Error; err != nil {
		utils.LogError("Failed to create tenant: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	go func() {
		if err := utils.SendWelcomeEmail(tenant.Email, tenant.Name, tenant.Slug); err != nil {
			utils.LogError("Welcome email failed for tenant %d: %v", tenant.ID, err)
		}
	}()

	token, err := generateTenantToken(tenant.ID)
	if err != nil {
		utils.LogError("Failed to sign token for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	utils.LogInfo("Tenant registered: %s (%s)", tenant.Name, tenant.Slug)
	utils.Created(c, "Registration successful", gin.H{
		"token": token,
		"tenant": gin.H{
			"id":    tenant.ID,
			"name":  tenant.Name,
			"slug":  tenant.Slug,
			"email": tenant.Email,
		},
	})
}

// POST /v1/auth/login
func LoginTenant(c *gin.Context) {
	utils.LogInfo("LoginTenant called")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	db := config.DB
	var tenant models.Tenant
	if err := db.Where("email = ?", req.Email).First(&tenant).Error; err != nil {
		utils.LogSecurity("Login attempt for unknown email: %s from %s", req.Email, c.ClientIP())
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(tenant.Password), []byte(req.Password)); err != nil {
		utils.LogSecurity("Failed login for tenant %d from %s", tenant.ID, c.ClientIP())
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if tenant.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	db.Model(&tenant).Update("last_login_at", time.Now())

	token, err := generateTenantToken(tenant.ID)
	if err != nil {
		utils.LogError("Failed to sign token for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"tenant": gin.H{
			"id":                  tenant.ID,
			"name":                tenant.Name,
			"slug":                tenant.Slug,
			"email":               tenant.Email,
			"subscription_plan":   tenant.SubscriptionPlan,
			"subscription_status": tenant.SubscriptionStatus,
		},
	})
}

// GoogleUserInfo is the profile payload returned by Google's userinfo endpoint
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GET /auth/google/login
func GoogleLogin(c *gin.Context) {
	url := config.GoogleOAuthConfig.AuthCodeURL("state")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	defer resp.Body.Close()

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		utils.InternalServerError(c, "Failed to decode user info", err.Error())
		return
	}
	if info.Email == "" {
		utils.BadRequest(c, "Google account has no email", nil)
		return
	}

	db := config.DB
	var tenant models.Tenant
	err = db.Where("email = ?", info.Email).First(&tenant).Error
	if err != nil {
		// First Google sign-in creates the account with a slug derived
		// from the profile name.
		slug := utils.Slugify(info.Name)
		if !utils.ValidateSlug(slug) {
			slug = fmt.Sprintf("restaurant-%d", time.Now().Unix())
		}
		tenant = models.Tenant{
			Name:     info.Name,
			Slug:     slug,
			Email:    info.Email,
			GoogleID: info.ID,
		}
		if err := db.Create(&tenant).Error; err != nil {
			utils.LogError("Failed to create tenant from Google login: %v", err)
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}
	} else if tenant.GoogleID == "" {
		db.Model(&tenant).Update("google_id", info.ID)
	}

	if tenant.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	jwtToken, err := generateTenantToken(tenant.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token": jwtToken,
		"tenant": gin.H{
			"id":    tenant.ID,
			"name":  tenant.Name,
			"slug":  tenant.Slug,
			"email": tenant.Email,
		},
	})
}
