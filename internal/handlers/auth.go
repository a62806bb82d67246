package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"puantaj-backend/internal/config"
	"puantaj-backend/internal/email"
	"puantaj-backend/internal/models"
	"puantaj-backend/internal/utils"
)

type AuthHandler struct {
	DB  *gorm.DB
	Cfg config.Config
}

func NewAuthHandler(db *gorm.DB, cfg config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totpCode"`
}

type tokenResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if user.TOTPSecret != "" {
		if req.TOTPCode == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "totp code required", "totpRequired": true})
			return
		}
		if !utils.VerifyTOTP(user.TOTPSecret, req.TOTPCode) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid totp code"})
			return
		}
	}

	h.issueTokens(c, user)
}

func (h *AuthHandler) issueTokens(c *gin.Context, user models.User) {
	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = user.EmployeeID.String()
	}

	access, err := utils.GenerateAccessToken(user.ID.String(), user.Role, employeeID, h.Cfg.JwtSecret, h.Cfg.JwtAccessMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refresh, err := utils.GenerateRefreshToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	token := models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JwtRefreshHours) * time.Hour),
	}
	if err := h.DB.Create(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist session"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: refresh, User: user})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var token models.RefreshToken
	if err := h.DB.Where("token = ?", req.RefreshToken).First(&token).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	if !token.Active(time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token expired or revoked"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", token.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	// Rotate: revoke the presented token before issuing a new pair.
	now := time.Now()
	token.RevokedAt = &now
	if err := h.DB.Save(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate token"})
		return
	}

	h.issueTokens(c, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	h.DB.Model(&models.RefreshToken{}).
		Where("token = ? AND revoked_at IS NULL", req.RefreshToken).
		Update("revoked_at", &now)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", c.GetString("userID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}
	user.PasswordHash = hash
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Do not reveal whether the account exists.
		c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a code was sent"})
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate code"})
		return
	}
	hash, err := utils.HashOTP(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate code"})
		return
	}

	otp := models.OTP{
		Email:     user.Email,
		CodeHash:  hash,
		Purpose:   "password_reset",
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.OtpMinutes) * time.Minute),
	}
	if err := h.DB.Create(&otp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store code"})
		return
	}
	if err := email.SendOTP(h.Cfg, user.Email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a code was sent"})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var otp models.OTP
	err := h.DB.Where("email = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?",
		req.Email, "password_reset", time.Now()).
		Order("created_at desc").First(&otp).Error
	if err != nil || !utils.CheckOTP(otp.CodeHash, req.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired code"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	now := time.Now()
	otp.UsedAt = &now
	user.PasswordHash = hash
	if err := h.DB.Save(&otp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to consume code"})
		return
	}
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *AuthHandler) SetupTOTP(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.GetString("userID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	secret, url, err := utils.GenerateTOTPSecret("Puantaj", user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate totp secret"})
		return
	}

	// Not armed until the user confirms a valid code via EnableTOTP.
	c.JSON(http.StatusOK, gin.H{"secret": secret, "url": url})
}

type enableTOTPRequest struct {
	Secret string `json:"secret" binding:"required"`
	Code   string `json:"code" binding:"required,len=6"`
}

func (h *AuthHandler) EnableTOTP(c *gin.Context) {
	var req enableTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.VerifyTOTP(req.Secret, req.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid totp code"})
		return
	}

	if err := h.DB.Model(&models.User{}).
		Where("id = ?", c.GetString("userID")).
		Update("totp_secret", req.Secret).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enable totp"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "totp enabled"})
}

func (h *AuthHandler) DisableTOTP(c *gin.Context) {
	if err := h.DB.Model(&models.User{}).
		Where("id = ?", c.GetString("userID")).
		Update("totp_secret", "").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to disable totp"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "totp disabled"})
}

// parseUUIDParam is shared by the resource handlers.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
