package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// With no Redis connection every operation degrades to a no-op; callers
// never branch on availability.
func TestNoRedisDegradesGracefully(t *testing.T) {
	RDB = nil

	var dest []string
	assert.False(t, Get("products:featured:10", &dest))
	require.NoError(t, Set("products:featured:10", []string{"x"}, 0))
	require.NoError(t, Forget("products:featured:10"))
	require.NoError(t, ForgetPrefix("products:featured:"))
}
