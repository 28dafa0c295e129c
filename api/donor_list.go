package api

import (
	"net/http"

	"bloodlink/donor-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// retireDonorCache invalidates every cached donor listing. Every
// handler that writes to the directory calls it after a successful
// store write.
func (a *API) retireDonorCache() {
	a.donorsVer.Add(1)
}

// DonorList returns every donor matching the optional bloodGroup and
// locality query filters. No filter returns the whole directory.
func (a *API) DonorList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	donors, err := a.Store.FindDonors(c.Request.Context(), model.DonorFilter{
		BloodGroup: c.Query("bloodGroup"),
		Locality:   c.Query("locality"),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to retrieve donors",
			"requestID": requestID,
		})

		zap.L().Error("Failed to query donors", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donors": donors,
	})
}
