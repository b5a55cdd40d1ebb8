package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
)

func TestFromRequestDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/product/show-products", nil)
	p := pagination.FromRequest(req)
	if p.Page != 1 || p.Limit != 10 {
		t.Errorf("expected defaults 1/10, got %d/%d", p.Page, p.Limit)
	}

	req = httptest.NewRequest("GET", "/?page=0&limit=-5", nil)
	p = pagination.FromRequest(req)
	if p.Page != 1 || p.Limit != 10 {
		t.Errorf("expected invalid values to fall back, got %d/%d", p.Page, p.Limit)
	}

	req = httptest.NewRequest("GET", "/?page=abc&limit=3", nil)
	p = pagination.FromRequest(req)
	if p.Page != 1 || p.Limit != 3 {
		t.Errorf("expected page fallback with explicit limit, got %d/%d", p.Page, p.Limit)
	}
}

func TestSkip(t *testing.T) {
	p := pagination.Params{Page: 3, Limit: 10}
	if p.Skip() != 20 {
		t.Errorf("expected skip 20, got %d", p.Skip())
	}
}

func TestWrapMiddlePage(t *testing.T) {
	p := pagination.Params{Page: 2, Limit: 10}
	res := p.Wrap([]int{1, 2, 3}, 25)

	if res.Previous == nil || res.Previous.Page != 1 {
		t.Error("expected previous page 1")
	}
	if res.Next == nil || res.Next.Page != 3 {
		t.Error("expected next page 3")
	}
}

func TestWrapFirstPage(t *testing.T) {
	p := pagination.Params{Page: 1, Limit: 10}
	res := p.Wrap([]int{1}, 25)

	if res.Previous != nil {
		t.Error("expected no previous on the first page")
	}
	if res.Next == nil || res.Next.Page != 2 {
		t.Error("expected next page 2")
	}
}

func TestWrapLastPage(t *testing.T) {
	p := pagination.Params{Page: 3, Limit: 10}
	res := p.Wrap([]int{1}, 25)

	if res.Previous == nil || res.Previous.Page != 2 {
		t.Error("expected previous page 2")
	}
	if res.Next != nil {
		t.Error("expected no next past the final page")
	}
}

func TestWrapExactBoundary(t *testing.T) {
	p := pagination.Params{Page: 2, Limit: 10}
	res := p.Wrap([]int{1}, 20)

	if res.Next != nil {
		t.Error("expected no next when the window ends exactly at total")
	}
}
