package api

import (
	"errors"
	"net/http"

	"bloodlink/donor-api/service"
	"bloodlink/donor-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetPasswordBody struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword replaces the user's password hash after a successful
// OTP check. The code is single-use either way.
func (a *API) ResetPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	err := a.OTP.ConsumeForReset(c.Request.Context(), data.Email, data.OTP, data.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message":   "Invalid OTP",
				"success":   false,
				"requestID": requestID,
			})
			return
		}

		// A valid code for an email that never registered, the signup
		// OTP path makes this reachable
		if errors.Is(err, service.ErrUnknownEmail) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "Email not registered. Please signup.",
				"success":   false,
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Password reset failed",
			"requestID": requestID,
		})

		zap.L().Error("Failed to reset password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successful",
		"success": true,
	})
}
