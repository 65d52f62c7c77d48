//go:build unit

package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
	doubles "github.com/mass-publish/masspub/test/infrastructure/repositorydoubles"
)

func TestResetCommandExecute(t *testing.T) {
	t.Parallel()

	policyFor := func(t *testing.T) *entities.VersionPolicy {
		t.Helper()
		policy, err := entities.NewVersionPolicy(entities.PolicyInput{
			Targets:    map[string]string{"pkga": "1.0.0", "pkgb": "1.0.0"},
			MaxCeiling: "99.0.0",
			Repos: []string{
				"https://github.com/example/pkga",
				"https://github.com/example/pkgb",
			},
		})
		require.NoError(t, err)
		return policy
	}

	newWorld := func() (*doubles.SpyGitSource, *doubles.SpyManifestRepository, *doubles.SpyGitRepository, *doubles.SpyGitRepository) {
		repoA := &doubles.SpyGitRepository{RepoPath: filepath.Join("repos", "pkga")}
		repoB := &doubles.SpyGitRepository{RepoPath: filepath.Join("repos", "pkgb")}
		gits := &doubles.SpyGitSource{Repos: map[string]*doubles.SpyGitRepository{
			repoA.RepoPath: repoA,
			repoB.RepoPath: repoB,
		}}
		manifests := &doubles.SpyManifestRepository{Manifests: map[string]*entities.Manifest{
			filepath.Join(repoA.RepoPath, entities.ManifestFileName): {Name: "pkga"},
			filepath.Join(repoB.RepoPath, entities.ManifestFileName): {Name: "pkgb"},
		}}
		return gits, manifests, repoA, repoB
	}

	t.Run("should reset only the repository declaring the package", func(t *testing.T) {
		// given
		gits, manifests, repoA, repoB := newWorld()
		cmd := commands.NewResetCommand(gits, manifests)

		// when
		err := cmd.Execute(policyFor(t), "repos", "pkgb")

		// then
		require.NoError(t, err)
		assert.Empty(t, repoA.Resets)
		assert.Equal(t, []string{"main"}, repoB.Resets)
	})

	t.Run("should fail for an unknown package", func(t *testing.T) {
		// given
		gits, manifests, repoA, repoB := newWorld()
		cmd := commands.NewResetCommand(gits, manifests)

		// when
		err := cmd.Execute(policyFor(t), "repos", "phantom")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no managed repository declares package "phantom"`)
		assert.Empty(t, repoA.Resets)
		assert.Empty(t, repoB.Resets)
	})
}
