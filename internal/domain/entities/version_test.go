package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mass-publish/masspub/internal/domain/entities"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	t.Run("should parse four-segment versions", func(t *testing.T) {
		// given
		raw := "2024.1.1.0"

		// when
		v, err := entities.ParseVersion(raw)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2024.1.1.0", v.String())
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		// when
		v, err := entities.ParseVersion("  1.2.3 ")

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", v.String())
	})

	t.Run("should reject empty strings", func(t *testing.T) {
		// when
		_, err := entities.ParseVersion("   ")

		// then
		require.Error(t, err)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		// when
		_, err := entities.ParseVersion("not-a-version")

		// then
		require.Error(t, err)
	})
}

func TestVersionCompare(t *testing.T) {
	t.Parallel()

	t.Run("should order fourth segments numerically", func(t *testing.T) {
		// given
		older := entities.MustParseVersion("2024.1.1.0")
		newer := entities.MustParseVersion("2024.1.1.2")

		// then
		assert.True(t, older.LessThan(newer))
		assert.True(t, newer.GreaterThan(older))
		assert.False(t, older.Equal(newer))
	})

	t.Run("should treat missing segments as zero", func(t *testing.T) {
		// given
		short := entities.MustParseVersion("2024.1.1")
		long := entities.MustParseVersion("2024.1.1.0")

		// then
		assert.True(t, short.Equal(long))
	})

	t.Run("should not compare lexically", func(t *testing.T) {
		// given
		nine := entities.MustParseVersion("1.9.0")
		ten := entities.MustParseVersion("1.10.0")

		// then
		assert.True(t, nine.LessThan(ten))
	})
}

func TestVersionReleaseTrain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		train   string
	}{
		{"2024.1.1.2", "2024.1.1"},
		{"2024.1.1", "2024.1.1"},
		{"2024.1", "2024.1.0"},
		{"2.0.0", "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.train, entities.MustParseVersion(tt.version).ReleaseTrain())
		})
	}
}
