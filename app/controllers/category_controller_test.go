package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamirkhan2478/elite-market-backend/app/controllers"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
	"github.com/aamirkhan2478/elite-market-backend/pkg/router"
)

// A malformed identifier must read as not-found without touching the
// store, so a nil repository is safe here.
func TestShowCategoryMalformedID(t *testing.T) {
	cc := controllers.NewCategoryController(nil)

	r := router.New()
	r.Get("/api/category/show-category/{id}", "category.show", ctx.Wrap(cc.ShowCategory))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/category/show-category/not-a-hex-id", nil)
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category not found")
}

func TestUpdateCategoryMalformedID(t *testing.T) {
	cc := controllers.NewCategoryController(nil)

	r := router.New()
	r.Put("/api/category/update-category/{id}", "category.update", ctx.Wrap(cc.UpdateCategory))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/category/update-category/12345", nil)
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category not found")
}
