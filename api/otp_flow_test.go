package api

import (
	"net/http"
	"testing"

	"bloodlink/donor-api/mailer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOTPNewEmail(t *testing.T) {
	a, fm, _ := newTestAPI(t)

	w, body := doJSON(t, a, http.MethodPost, "/send-otp", gin.H{"email": "new@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP sent successfully", body["message"])

	require.Len(t, fm.sends, 1)
	assert.Equal(t, []string{"new@x.com"}, fm.sends[0].To)
	assert.Equal(t, mailer.SubjectOTP, fm.sends[0].Subject)
}

func TestSendOTPRegisteredEmail(t *testing.T) {
	a, fm, _ := newTestAPI(t)
	registerDonor(t, a, "Asha", "asha@x.com", "O+", "Indiranagar")

	w, body := doJSON(t, a, http.MethodPost, "/send-otp", gin.H{"email": "asha@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered. Please login.", body["message"])
	assert.Empty(t, fm.sends)
}

func TestSendRecoveryOTP(t *testing.T) {
	a, fm, _ := newTestAPI(t)

	w, body := doJSON(t, a, http.MethodPost, "/send-ot", gin.H{"email": "nobody@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email not registered. Please signup.", body["message"])

	registerDonor(t, a, "Asha", "asha@x.com", "O+", "Indiranagar")

	w, body = doJSON(t, a, http.MethodPost, "/send-ot", gin.H{"email": "asha@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP sent successfully", body["message"])
	assert.Len(t, fm.sends, 1)
}

func TestSendOTPInvalidEmail(t *testing.T) {
	a, fm, _ := newTestAPI(t)

	w, _ := doJSON(t, a, http.MethodPost, "/send-otp", gin.H{"email": "not-an-address"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, fm.sends)
}

func TestSendOTPDispatchFailure(t *testing.T) {
	a, fm, _ := newTestAPI(t)
	fm.fail = true

	w, body := doJSON(t, a, http.MethodPost, "/send-otp", gin.H{"email": "new@x.com"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to send OTP.", body["message"])
}

func TestVerifyOTPSingleUse(t *testing.T) {
	a, fm, _ := newTestAPI(t)

	w, _ := doJSON(t, a, http.MethodPost, "/send-otp", gin.H{"email": "new@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	code := fm.lastCode(t)

	w, body := doJSON(t, a, http.MethodPost, "/verify-otp", gin.H{"email": "new@x.com", "otp": code})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP verified successfully", body["message"])
	assert.Equal(t, true, body["success"])

	w, body = doJSON(t, a, http.MethodPost, "/verify-otp", gin.H{"email": "new@x.com", "otp": code})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid OTP", body["message"])
	assert.Equal(t, false, body["success"])
}

func TestVerifyOTPWrongCode(t *testing.T) {
	a, fm, _ := newTestAPI(t)

	w, _ := doJSON(t, a, http.MethodPost, "/send-otp", gin.H{"email": "new@x.com"})
	require.Equal(t, http.StatusOK, w.Code)

	wrong := "000000"
	if fm.lastCode(t) == wrong {
		wrong = "000001"
	}

	w, body := doJSON(t, a, http.MethodPost, "/verify-otp", gin.H{"email": "new@x.com", "otp": wrong})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestResetPasswordFlow(t *testing.T) {
	a, fm, _ := newTestAPI(t)
	registerDonor(t, a, "Asha", "asha@x.com", "O+", "Indiranagar")

	w, _ := doJSON(t, a, http.MethodPost, "/send-ot", gin.H{"email": "asha@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	code := fm.lastCode(t)

	w, body := doJSON(t, a, http.MethodPost, "/reset-password", gin.H{
		"email":       "asha@x.com",
		"otp":         code,
		"newPassword": "fresh-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Password reset successful", body["message"])
	assert.Equal(t, true, body["success"])

	// Old credentials no longer work, new ones do
	w, _ = doJSON(t, a, http.MethodPost, "/login", gin.H{"email": "asha@x.com", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, a, http.MethodPost, "/login", gin.H{"email": "asha@x.com", "password": "fresh-password"})
	assert.Equal(t, http.StatusOK, w.Code)

	// The code was burned by the reset
	w, _ = doJSON(t, a, http.MethodPost, "/reset-password", gin.H{
		"email":       "asha@x.com",
		"otp":         code,
		"newPassword": "another-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	a, fm, _ := newTestAPI(t)

	// A signup code is valid for an email with no account behind it
	w, _ := doJSON(t, a, http.MethodPost, "/send-otp", gin.H{"email": "nobody@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	code := fm.lastCode(t)

	w, body := doJSON(t, a, http.MethodPost, "/reset-password", gin.H{
		"email":       "nobody@x.com",
		"otp":         code,
		"newPassword": "fresh-password",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Email not registered. Please signup.", body["message"])
	assert.Equal(t, false, body["success"])
}

func TestResetPasswordInvalidCode(t *testing.T) {
	a, _, _ := newTestAPI(t)
	registerDonor(t, a, "Asha", "asha@x.com", "O+", "Indiranagar")

	w, body := doJSON(t, a, http.MethodPost, "/reset-password", gin.H{
		"email":       "asha@x.com",
		"otp":         "123456",
		"newPassword": "fresh-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid OTP", body["message"])
}
