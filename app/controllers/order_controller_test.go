package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/controllers"
	"github.com/aamirkhan2478/elite-market-backend/app/middleware"
	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
)

func postOrder(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	oc := controllers.NewOrderController(nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/order/add-order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	user := &models.User{ID: primitive.NewObjectID(), Name: "Jane"}
	req = req.WithContext(middleware.WithUser(req.Context(), user))

	ctx.Wrap(oc.AddOrder)(rec, req)
	return rec
}

func TestAddOrderRequiresSession(t *testing.T) {
	oc := controllers.NewOrderController(nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/order/add-order", strings.NewReader(`{}`))
	ctx.Wrap(oc.AddOrder)(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddOrderRejectsBadPhone(t *testing.T) {
	rec := postOrder(t, `{
		"orderItems": [{"quantity": 1, "product": "64a1f0c2e4b0a1b2c3d4e5f6"}],
		"shippingAddress": "12 Main St",
		"city": "Karachi",
		"zip": "74000",
		"phone": "123"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mobile must be a number and equal to 11 numbers")
}

func TestAddOrderRejectsZeroQuantity(t *testing.T) {
	rec := postOrder(t, `{
		"orderItems": [{"quantity": 0, "product": "64a1f0c2e4b0a1b2c3d4e5f6"}],
		"shippingAddress": "12 Main St",
		"city": "Karachi",
		"zip": "74000",
		"phone": "03001234567"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity of order item 1 must be at least 1")
}

func TestAddOrderRejectsMalformedProductID(t *testing.T) {
	rec := postOrder(t, `{
		"orderItems": [{"quantity": 1, "product": "not-an-id"}],
		"shippingAddress": "12 Main St",
		"city": "Karachi",
		"zip": "74000",
		"phone": "03001234567"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product of order item 1 must be a valid identifier")
}
