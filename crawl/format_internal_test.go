package crawl

import (
	"strconv"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHash(t *testing.T) {
	t.Parallel()

	t.Run("is stable for the same body", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, contentHash("body"), contentHash("body"))
	})

	t.Run("differs for different bodies", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, contentHash("body a"), contentHash("body b"))
	})

	t.Run("is the zero-padded hex xxhash digest", func(t *testing.T) {
		t.Parallel()
		hash := contentHash("test")
		assert.Len(t, hash, 16)
		v, err := strconv.ParseUint(hash, 16, 64)
		require.NoError(t, err)
		assert.Equal(t, xxhash.Sum64String("test"), v)
	})
}
