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

type registerBody struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	BloodGroup string `json:"bloodGroup"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	Locality   string `json:"locality"`
}

// UserRegister creates a new donor record. The email is the identity
// key; a taken email fails without touching the store.
func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
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

	if err := validators.PasswordValidator(data.Password); err != nil {
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

	if data.Name == "" || data.Locality == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Name and locality are required",
			"requestID": requestID,
		})
		return
	}

	hash, err := a.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Registration failed",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := a.Store.CreateUser(c.Request.Context(), &model.User{
		Name:       data.Name,
		Age:        data.Age,
		Gender:     data.Gender,
		BloodGroup: data.BloodGroup,
		Email:      data.Email,
		Password:   hash,
		Phone:      data.Phone,
		Locality:   data.Locality,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message":   "Email already registered. Please login.",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Registration failed",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.retireDonorCache()

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration successful",
		"user":    user,
	})
}
