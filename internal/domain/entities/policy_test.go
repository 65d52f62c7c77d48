package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mass-publish/masspub/internal/domain/entities"
)

func validPolicyInput() entities.PolicyInput {
	return entities.PolicyInput{
		Targets: map[string]string{
			"wpimath": "2024.1.1.2",
			"wpiutil": "2024.1.1.0",
			"toolkit": "2.0.0",
		},
		MinVersions: map[string]string{
			"toolkit": "1.5.0",
			"wpiutil": entities.MinFromTarget,
		},
		MaxCeiling:    "2025.0.0",
		Linked:        []string{"wpimath", "wpiutil"},
		ReleaseBranch: "main",
		Repos: []string{
			"https://github.com/example/wpiutil",
			"https://github.com/example/wpimath",
		},
		MetaPackage: "robotpy",
	}
}

func TestNewVersionPolicy(t *testing.T) {
	t.Parallel()

	t.Run("should build a consistent snapshot", func(t *testing.T) {
		// when
		policy, err := entities.NewVersionPolicy(validPolicyInput())

		// then
		require.NoError(t, err)
		assert.Equal(t, "2024.1.1.2", policy.TargetFor("wpimath").String())
		assert.Equal(t, "2025.0.0", policy.MaxCeiling().String())
		assert.Equal(t, "main", policy.ReleaseBranch)
		assert.True(t, policy.IsLinked("wpimath"))
		assert.False(t, policy.IsLinked("toolkit"))
		assert.Nil(t, policy.TargetFor("unknown"))
	})

	t.Run("should resolve symbolic minimums from the target", func(t *testing.T) {
		// when
		policy, err := entities.NewVersionPolicy(validPolicyInput())

		// then
		require.NoError(t, err)
		assert.Equal(t, "2024.1.1.0", policy.MinimumFor("wpiutil").String())
		assert.Equal(t, "1.5.0", policy.MinimumFor("toolkit").String())
		assert.Nil(t, policy.MinimumFor("unknown"))
	})

	t.Run("should default the release branch", func(t *testing.T) {
		// given
		input := validPolicyInput()
		input.ReleaseBranch = ""

		// when
		policy, err := entities.NewVersionPolicy(input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "main", policy.ReleaseBranch)
	})

	t.Run("should reject a minimum above its target", func(t *testing.T) {
		// given
		input := validPolicyInput()
		input.MinVersions["toolkit"] = "2.1.0" // target is 2.0.0

		// when
		_, err := entities.NewVersionPolicy(input)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "greater than its target")
	})

	t.Run("should reject a symbolic minimum without a target", func(t *testing.T) {
		// given
		input := validPolicyInput()
		input.MinVersions["orphan"] = entities.MinFromTarget

		// when
		_, err := entities.NewVersionPolicy(input)

		// then
		require.Error(t, err)
	})

	t.Run("should reject linked packages on different release trains", func(t *testing.T) {
		// given
		input := validPolicyInput()
		input.Targets["wpimath"] = "2023.4.0.0" // wpiutil stays on 2024.1.1

		// when
		_, err := entities.NewVersionPolicy(input)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "release train")
	})

	t.Run("should reject a linked package without a target", func(t *testing.T) {
		// given
		input := validPolicyInput()
		input.Linked = append(input.Linked, "phantom")

		// when
		_, err := entities.NewVersionPolicy(input)

		// then
		require.Error(t, err)
	})

	t.Run("should reject an unparseable ceiling", func(t *testing.T) {
		// given
		input := validPolicyInput()
		input.MaxCeiling = ""

		// when
		_, err := entities.NewVersionPolicy(input)

		// then
		require.Error(t, err)
	})
}

func TestVersionPolicyIsManaged(t *testing.T) {
	t.Parallel()

	policy, err := entities.NewVersionPolicy(validPolicyInput())
	require.NoError(t, err)

	assert.True(t, policy.IsManaged("toolkit"), "has a minimum")
	assert.True(t, policy.IsManaged("wpimath"), "linked")
	assert.False(t, policy.IsManaged("requests"), "third-party")
}
