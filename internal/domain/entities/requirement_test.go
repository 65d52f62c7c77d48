package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mass-publish/masspub/internal/domain/entities"
)

func TestParseRequirement(t *testing.T) {
	t.Parallel()

	t.Run("should parse a ranged requirement", func(t *testing.T) {
		// when
		req, err := entities.ParseRequirement("wpiutil>=2023.0.0,<2024.0.0")

		// then
		require.NoError(t, err)
		assert.Equal(t, "wpiutil", req.Name)
		require.Len(t, req.Specs, 2)
		assert.Equal(t, entities.Specifier{Op: entities.OpMinimum, Version: "2023.0.0"}, req.Specs[0])
		assert.Equal(t, entities.Specifier{Op: entities.OpMaximum, Version: "2024.0.0"}, req.Specs[1])
	})

	t.Run("should parse extras and markers", func(t *testing.T) {
		// when
		req, err := entities.ParseRequirement("robotpy[dev]~=2024.1.1 ; python_version >= '3.8'")

		// then
		require.NoError(t, err)
		assert.Equal(t, "robotpy", req.Name)
		assert.Equal(t, "[dev]", req.Extras)
		require.Len(t, req.Specs, 1)
		assert.Equal(t, entities.OpCompatible, req.Specs[0].Op)
		assert.Equal(t, "python_version >= '3.8'", req.Marker)
	})

	t.Run("should parse a bare name", func(t *testing.T) {
		// when
		req, err := entities.ParseRequirement("wheel")

		// then
		require.NoError(t, err)
		assert.Equal(t, "wheel", req.Name)
		assert.Empty(t, req.Specs)
	})

	t.Run("should tolerate spaces around clauses", func(t *testing.T) {
		// when
		req, err := entities.ParseRequirement("wheel >= 0.40.0, < 1.0.0")

		// then
		require.NoError(t, err)
		assert.Equal(t, "wheel", req.Name)
		require.Len(t, req.Specs, 2)
		assert.Equal(t, "0.40.0", req.Specs[0].Version)
	})

	t.Run("should not split the compatible operator", func(t *testing.T) {
		// when
		req, err := entities.ParseRequirement("wpimath~=2024.1.1")

		// then
		require.NoError(t, err)
		require.Len(t, req.Specs, 1)
		assert.Equal(t, entities.OpCompatible, req.Specs[0].Op)
		assert.Equal(t, "2024.1.1", req.Specs[0].Version)
	})

	t.Run("should keep the raw text", func(t *testing.T) {
		// given
		raw := "wheel >= 0.40.0"

		// when
		req, err := entities.ParseRequirement(raw)

		// then
		require.NoError(t, err)
		assert.Equal(t, raw, req.Raw)
	})

	t.Run("should reject a requirement without a name", func(t *testing.T) {
		// when
		_, err := entities.ParseRequirement(">=1.0.0")

		// then
		require.Error(t, err)
	})

	t.Run("should reject a clause without a version", func(t *testing.T) {
		// when
		_, err := entities.ParseRequirement("wheel>=")

		// then
		require.Error(t, err)
	})

	t.Run("should reject a clause without an operator", func(t *testing.T) {
		// when
		_, err := entities.ParseRequirement("wheel 0.40.0")

		// then
		require.Error(t, err)
	})
}

func TestRequirementString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"normalizes spacing", "wheel >= 0.40.0, < 1.0.0", "wheel>=0.40.0,<1.0.0"},
		{"keeps extras", "robotpy[dev]~=2024.1.1", "robotpy[dev]~=2024.1.1"},
		{"keeps markers", "tomli>=1.1.0 ; python_version < '3.11'", "tomli>=1.1.0 ; python_version < '3.11'"},
		{"bare name", "wheel", "wheel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := entities.ParseRequirement(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.String())
		})
	}
}
