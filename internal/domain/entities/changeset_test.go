package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mass-publish/masspub/internal/domain/entities"
)

func TestCommitChangeSet(t *testing.T) {
	t.Parallel()

	t.Run("should start empty", func(t *testing.T) {
		assert.True(t, entities.NewCommitChangeSet().Empty())
	})

	t.Run("should collapse duplicates", func(t *testing.T) {
		// given
		changes := entities.NewCommitChangeSet()

		// when
		changes.Add("wpiutil >= 2024.1.1.0")
		changes.Add("wpiutil >= 2024.1.1.0")

		// then
		assert.False(t, changes.Empty())
		assert.Len(t, changes.Sorted(), 1)
	})

	t.Run("should compose a sorted bullet list", func(t *testing.T) {
		// given
		changes := entities.NewCommitChangeSet()
		changes.Add("wpiutil >= 2024.1.1.0")
		changes.Add("pyntcore ~= 2024.1.1")

		// when
		message := changes.Message()

		// then
		assert.Equal(t,
			"Updated dependencies\n\n- pyntcore ~= 2024.1.1\n- wpiutil >= 2024.1.1.0",
			message,
		)
	})
}
