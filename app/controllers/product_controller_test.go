package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every featured cache key must sit under the prefix the write paths
// forget, or a product write stops invalidating that listing.
func TestFeaturedCacheKeyUnderPrefix(t *testing.T) {
	assert.True(t, strings.HasPrefix(featuredCacheKey(1), featuredCachePrefix))
	assert.True(t, strings.HasPrefix(featuredCacheKey(10), featuredCachePrefix))
	assert.NotEqual(t, featuredCacheKey(1), featuredCacheKey(10))
}
