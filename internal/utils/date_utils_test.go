package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontendDate(t *testing.T) {
	t.Run("date only becomes noon in Sao Paulo", func(t *testing.T) {
		got, err := ParseFrontendDate("2025-03-10")
		require.NoError(t, err)

		local := got.In(GetBrasilLocation())
		assert.Equal(t, 2025, local.Year())
		assert.Equal(t, time.March, local.Month())
		assert.Equal(t, 10, local.Day())
		assert.Equal(t, 12, local.Hour())
	})

	t.Run("RFC3339 keeps the instant", func(t *testing.T) {
		got, err := ParseFrontendDate("2025-03-10T08:30:00Z")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := ParseFrontendDate("amanhã")
		assert.Error(t, err)
	})

	t.Run("empty is rejected", func(t *testing.T) {
		_, err := ParseFrontendDate("  ")
		assert.Error(t, err)
	})
}

func TestParseFrontendDateOrNow(t *testing.T) {
	before := time.Now().Add(-time.Second)
	got := ParseFrontendDateOrNow("not a date")
	assert.True(t, got.After(before))
}
