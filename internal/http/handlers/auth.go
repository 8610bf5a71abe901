package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/campuscore-backend/internal/http/response"
	"github.com/campuscore/campuscore-backend/internal/platform/ctxutil"
	"github.com/campuscore/campuscore-backend/internal/services"
)

// PendingLoginCookie carries the opaque handle of a parked two-factor login
// between the password step and the code step.
const PendingLoginCookie = "pending_login"

type AuthHandler struct {
	authService     services.AuthService
	pendingLoginTTL int
	secureCookies   bool
}

func NewAuthHandler(authService services.AuthService, pendingLoginTTLSeconds int, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		pendingLoginTTL: pendingLoginTTLSeconds,
		secureCookies:   secureCookies,
	}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"id":    user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
	})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}

	if result.TwoFactorRequired {
		if ah.secureCookies {
			c.SetSameSite(http.SameSiteNoneMode)
		}
		c.SetCookie(PendingLoginCookie, result.PendingHandle, ah.pendingLoginTTL, "/", "", ah.secureCookies, true)
		response.RespondOK(c, gin.H{
			"twoFactorRequired": true,
			"tempUserId":        result.TempUserID,
		})
		return
	}

	response.RespondOK(c, gin.H{
		"token":      result.Token,
		"role":       result.Role,
		"expires_in": int(ah.authService.TokenTTL().Seconds()),
	})
}

func (ah *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := ah.authService.ChangePassword(c.Request.Context(), rd.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
