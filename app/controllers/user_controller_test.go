package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamirkhan2478/elite-market-backend/app/controllers"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
)

// The validation paths run entirely before any store access, so a
// controller with nil dependencies exercises them safely.

func postJSON(t *testing.T, handler ctx.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Wrap(handler)(rec, req)
	return rec
}

func TestSignupValidationAggregate(t *testing.T) {
	uc := controllers.NewUserController(nil, nil, nil)

	rec := postJSON(t, uc.Signup, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "Name should have at least 3 characters and should not any number!", body.Error)
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "mobile")
	assert.Contains(t, body.Errors, "password")
}

func TestSignupRejectsNumericName(t *testing.T) {
	uc := controllers.NewUserController(nil, nil, nil)

	rec := postJSON(t, uc.Signup, `{
		"name": "J0hn",
		"email": "john@example.com",
		"address": "12 Main St",
		"mobile": "03001234567",
		"password": "Secret@123"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name should have at least 3 characters and should not any number!")
}

func TestSignupRejectsShortMobile(t *testing.T) {
	uc := controllers.NewUserController(nil, nil, nil)

	rec := postJSON(t, uc.Signup, `{
		"name": "John Doe",
		"email": "john@example.com",
		"address": "12 Main St",
		"mobile": "0300123",
		"password": "Secret@123"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mobile must be a number and equal to 11 numbers")
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	uc := controllers.NewUserController(nil, nil, nil)

	rec := postJSON(t, uc.Signup, `{
		"name": "John Doe",
		"email": "john@example.com",
		"address": "12 Main St",
		"mobile": "03001234567",
		"password": "weak"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password must contain at least 8 characters")
}

func TestLoginMissingFields(t *testing.T) {
	uc := controllers.NewUserController(nil, nil, nil)

	rec := postJSON(t, uc.Login, `{"email": "john@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill all required fields")
}
