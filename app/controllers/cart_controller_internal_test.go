package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
)

func cartEntry(price float64, qty int) models.PopulatedCart {
	return models.PopulatedCart{
		Quantity: qty,
		Product:  &models.PopulatedProduct{Price: price},
	}
}

func TestCartPayloadTotalsAndPages(t *testing.T) {
	cart := []models.PopulatedCart{
		cartEntry(10, 2),
		cartEntry(5, 1),
	}

	// Page 2 of 25 entries at limit 10: both neighbours exist.
	p := pagination.Params{Page: 2, Limit: 10}
	payload := cartPayload(cart, p.Wrap(cart, 25))

	assert.Equal(t, 25.0, payload["totalAmount"])
	assert.Equal(t, cart, payload["cart"])

	next, ok := payload["next"].(*pagination.Page)
	require.True(t, ok)
	assert.Equal(t, int64(3), next.Page)

	previous, ok := payload["previous"].(*pagination.Page)
	require.True(t, ok)
	assert.Equal(t, int64(1), previous.Page)
}

func TestCartPayloadSinglePage(t *testing.T) {
	cart := []models.PopulatedCart{cartEntry(10, 1)}

	p := pagination.Params{Page: 1, Limit: 10}
	payload := cartPayload(cart, p.Wrap(cart, 1))

	assert.Equal(t, 10.0, payload["totalAmount"])
	assert.NotContains(t, payload, "next")
	assert.NotContains(t, payload, "previous")
}

// An entry whose product vanished contributes nothing to the total.
func TestCartPayloadSkipsMissingProducts(t *testing.T) {
	cart := []models.PopulatedCart{
		cartEntry(10, 2),
		{Quantity: 3, Product: nil},
	}

	p := pagination.Params{Page: 1, Limit: 10}
	payload := cartPayload(cart, p.Wrap(cart, 2))

	assert.Equal(t, 20.0, payload["totalAmount"])
}
