package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/middleware"
	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/pkg/router"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ws"
)

func okHandler() (http.Handler, *bool) {
	called := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}), called
}

func TestAdminWithoutSession(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/show-users", nil)

	middleware.Admin(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAdminRejectsNonAdmin(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/show-users", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{
		ID: primitive.NewObjectID(), IsAdmin: false,
	}))

	middleware.Admin(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin access required")
	assert.False(t, *called)
}

func TestAdminAllowsAdmin(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/show-users", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{
		ID: primitive.NewObjectID(), IsAdmin: true,
	}))

	middleware.Admin(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/get-user", nil)

	middleware.Auth(nil)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

// The order feed is mounted behind Auth+Admin; an anonymous dial must be
// refused before the websocket handshake completes.
func TestOrderFeedRejectsAnonymousDial(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	r := router.New()
	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	}, middleware.Auth(nil), middleware.Admin)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if conn != nil {
		conn.Close()
	}

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/get-user", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	middleware.Auth(nil)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
	assert.False(t, *called)
}
