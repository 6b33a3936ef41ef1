package handlers

import (
	"MediTrack/middlewares"
	"MediTrack/models"
	"MediTrack/services"
	"MediTrack/utils"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		UserService: userService,
	}
}

// Register handles new user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.ValidateAndCreateUser(ctx, &user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}

	c.JSON(http.StatusCreated, user.Sanitize())
}

// Login authenticates the user and returns tokens along with user info
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.AuthenticateUser(ctx, credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate tokens: %v", err)})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user.Sanitize(),
	})
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	claims, err := utils.ValidateToken(body.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logoff clears the auth cookies.
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged off"})
}

// GetUserProfile returns the calling user's sanitized profile.
func (h *AuthHandler) GetUserProfile(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller identity missing"})
		return
	}

	user, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.Sanitize())
}

// SendResetCode emails a password reset code to a registered address.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.SendResetCode(c.Request.Context(), body.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset code was sent"})
}

// ChangePassword resets a password given a valid reset code.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var body struct {
		Email       string `json:"email"`
		ResetCode   string `json:"resetCode"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.ResetPassword(c.Request.Context(), body.Email, body.ResetCode, body.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Password reset failed: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteAccount removes the calling user's account.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller identity missing"})
		return
	}

	if err := h.UserService.DeleteUser(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	utils.ClearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
