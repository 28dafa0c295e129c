package api

import (
	"errors"
	"net/http"

	"bloodlink/donor-api/model"
	"bloodlink/donor-api/store"
	"bloodlink/donor-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updateProfileBody struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Locality   string `json:"locality"`
	BloodGroup string `json:"bloodGroup"`
}

// ProfileUpdate applies a partial update to the mutable profile
// fields, looked up by email. Omitted fields stay as they are.
func (a *API) ProfileUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data updateProfileBody
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

	if err := validators.BloodGroupValidator(data.BloodGroup); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	user, err := a.Store.UpdateUserProfile(c.Request.Context(), data.Email, model.ProfileUpdate{
		Name:       data.Name,
		Phone:      data.Phone,
		Locality:   data.Locality,
		BloodGroup: data.BloodGroup,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "User not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Profile update failed",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.retireDonorCache()

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
