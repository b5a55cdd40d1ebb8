package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appctx "github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
)

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.JSON(http.StatusOK, map[string]any{"ok": true})
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestBindJSONValidationFailure(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var body in
		if ok := c.BindJSON(&body); ok {
			t.Error("expected bind to fail")
		}
	})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("expected an error body, got: %s", rec.Body.String())
	}
}

func TestBindJSONAllAggregates(t *testing.T) {
	type in struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var body in
		c.BindJSONAll(&body)
	})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"errors"`) {
		t.Errorf("expected the violation aggregate, got: %s", body)
	}
	if !strings.Contains(body, `"name"`) || !strings.Contains(body, `"email"`) {
		t.Errorf("expected both fields reported, got: %s", body)
	}
}

func TestBindJSONMalformedBody(t *testing.T) {
	type in struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var body in
		if ok := c.BindJSON(&body); ok {
			t.Error("expected bind to fail on malformed JSON")
		}
	})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestMessageAndCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Created("Order placed successfully")
	})(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Order placed successfully") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestNotFoundDefaultAndCustom(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.NotFound("Product not found")
	})(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Product not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestObjectIDParamMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	// No chi route context, so the param resolves to "".
	req := httptest.NewRequest(http.MethodGet, "/show-product/zzz", nil)
	appctx.Wrap(func(c *appctx.Context) {
		if _, ok := c.ObjectIDParam("id"); ok {
			t.Error("expected malformed id to be rejected")
		}
		c.NotFound("Product not found")
	})(rec, req)
}

func TestDefaultQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?search=shoes", nil)
	appctx.Wrap(func(c *appctx.Context) {
		if got := c.DefaultQuery("search", "x"); got != "shoes" {
			t.Errorf("expected shoes, got %q", got)
		}
		if got := c.DefaultQuery("missing", "fallback"); got != "fallback" {
			t.Errorf("expected fallback, got %q", got)
		}
		c.Success(nil)
	})(rec, req)
	_ = rec
}

func TestSetAndGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Set("key", 42)
		v, ok := c.Get("key")
		if !ok || v.(int) != 42 {
			t.Errorf("expected 42, got %v", v)
		}
		c.Success(nil)
	})(rec, req)
	_ = rec
}
