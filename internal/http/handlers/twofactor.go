package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/campuscore-backend/internal/http/response"
	"github.com/campuscore/campuscore-backend/internal/platform/ctxutil"
	"github.com/campuscore/campuscore-backend/internal/services"
)

type TwoFactorHandler struct {
	twoFactorService services.TwoFactorService
	authService      services.AuthService
}

func NewTwoFactorHandler(twoFactorService services.TwoFactorService, authService services.AuthService) *TwoFactorHandler {
	return &TwoFactorHandler{twoFactorService: twoFactorService, authService: authService}
}

func (th *TwoFactorHandler) Setup(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	setup, err := th.twoFactorService.Setup(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"secret":     setup.Secret,
		"otpauthUrl": setup.OTPAuthURL,
		"qrCode":     setup.QRCodeDataURL,
	})
}

func (th *TwoFactorHandler) ConfirmSetup(c *gin.Context) {
	var req struct {
		Code string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := th.twoFactorService.ConfirmSetup(c.Request.Context(), rd.UserID, req.Code); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enabled": true})
}

func (th *TwoFactorHandler) Disable(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := th.twoFactorService.Disable(c.Request.Context(), rd.UserID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enabled": false})
}

// VerifyLogin finishes the two-step login. The pending handle arrives in the
// cookie set by the password step; the code comes in the body.
func (th *TwoFactorHandler) VerifyLogin(c *gin.Context) {
	var req struct {
		Code string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	handle, _ := c.Cookie(PendingLoginCookie)
	result, err := th.twoFactorService.CompleteLogin(c.Request.Context(), handle, req.Code)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	// Clear the consumed handle.
	c.SetCookie(PendingLoginCookie, "", -1, "/", "", false, true)
	response.RespondOK(c, gin.H{
		"token":      result.Token,
		"role":       result.Role,
		"expires_in": int(th.authService.TokenTTL().Seconds()),
	})
}
