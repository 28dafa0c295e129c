package api

import (
	"errors"
	"net/http"

	"bloodlink/donor-api/service"
	"bloodlink/donor-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type sendOTPBody struct {
	Email string `json:"email"`
}

// SendOTP issues a signup OTP. The email must not be registered yet.
func (a *API) SendOTP(c *gin.Context) {
	a.issueOTP(c, service.ModeSignup)
}

// SendRecoveryOTP issues a password-recovery OTP. The email must
// belong to an existing user.
func (a *API) SendRecoveryOTP(c *gin.Context) {
	a.issueOTP(c, service.ModeRecovery)
}

func (a *API) issueOTP(c *gin.Context, mode service.Mode) {
	requestID := c.MustGet("requestID").(string)

	var data sendOTPBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	_, err := a.OTP.Issue(c.Request.Context(), data.Email, mode)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": "OTP sent successfully",
		})
	case errors.Is(err, service.ErrEmailTaken):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Email already registered. Please login.",
			"requestID": requestID,
		})
	case errors.Is(err, service.ErrUnknownEmail):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Email not registered. Please signup.",
			"requestID": requestID,
		})
	case errors.Is(err, service.ErrDispatch):
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to send OTP.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to dispatch OTP mail", zap.Error(err), zap.String("requestID", requestID))
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to send OTP.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue OTP", zap.Error(err), zap.String("requestID", requestID))
	}
}
