package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bloodlink/donor-api/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu    sync.Mutex
	sends []sentMail
	fail  bool
}

type sentMail struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

func (f *fakeMailer) Send(to []string, subject, text, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("smtp unreachable")
	}

	f.sends = append(f.sends, sentMail{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

// lastCode pulls the six-digit code out of the most recent OTP mail.
func (f *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.sends)
	text := f.sends[len(f.sends)-1].Text
	require.GreaterOrEqual(t, len(text), 6)
	return text[len(text)-6:]
}

func newTestAPI(t *testing.T) (*API, *fakeMailer, *store.Memory) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("jwt.secret", "test-secret")

	st := store.NewMemory(300 * time.Second)
	fm := &fakeMailer{}
	return newAPI(st, fm), fm, st
}

func doJSON(t *testing.T, a *API, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	decoded := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}

	return w, decoded
}

func registerDonor(t *testing.T, a *API, name, email, bloodGroup, locality string) {
	t.Helper()

	w, _ := doJSON(t, a, http.MethodPost, "/register", gin.H{
		"name":       name,
		"age":        30,
		"gender":     "female",
		"bloodGroup": bloodGroup,
		"email":      email,
		"password":   "password123",
		"phone":      "9999999999",
		"locality":   locality,
	})
	require.Equal(t, http.StatusOK, w.Code)
}
