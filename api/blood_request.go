package api

import (
	"net/http"

	"bloodlink/donor-api/mailer"
	"bloodlink/donor-api/model"
	"bloodlink/donor-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type bloodRequestBody struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	BloodGroup string `json:"bloodGroup"`
	Locality   string `json:"locality"`
}

// BloodRequest matches donors on blood group and locality, excluding
// the requester's own email, and notifies all of them in one dispatch.
func (a *API) BloodRequest(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data bloodRequestBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.BloodGroupValidator(data.BloodGroup); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	donors, err := a.Store.FindDonors(c.Request.Context(), model.DonorFilter{
		BloodGroup:   data.BloodGroup,
		Locality:     data.Locality,
		ExcludeEmail: data.Email,
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to send blood request email.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to query matching donors", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if len(donors) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "No donors available for the requested blood group in this locality.",
			"requestID": requestID,
		})
		return
	}

	recipients := make([]string, 0, len(donors))
	for _, donor := range donors {
		recipients = append(recipients, donor.Email)
	}

	text, html := mailer.BloodRequestBodies(data.Name, data.Email, data.Phone, data.BloodGroup, data.Locality)
	if err := a.Mail.Send(recipients, mailer.SubjectBloodRequest, text, html); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to send blood request email.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to dispatch blood request mail", zap.Error(err),
			zap.Int("recipients", len(recipients)), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Blood request sent successfully to available donors.",
	})
}
