package api

import (
	"errors"
	"net/http"

	"bloodlink/donor-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type verifyOTPBody struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP checks an email+code pair and burns the code on success.
// Wrong, expired and missing codes all come back as "Invalid OTP".
func (a *API) VerifyOTP(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data verifyOTPBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err := a.OTP.Verify(c.Request.Context(), data.Email, data.OTP)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message":   "Invalid OTP",
				"success":   false,
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "OTP verification failed",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify OTP", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP verified successfully",
		"success": true,
	})
}
