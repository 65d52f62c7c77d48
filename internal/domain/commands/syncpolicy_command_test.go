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

func TestSyncPolicyCommandExecute(t *testing.T) {
	t.Parallel()

	newWorld := func(t *testing.T, tagA, tagB string) (*entities.VersionPolicy, *commands.SyncPolicyCommand, *doubles.SpyPolicyRepository) {
		t.Helper()
		policy, err := entities.NewVersionPolicy(entities.PolicyInput{
			Targets:    map[string]string{"pkga": "2.0.0", "pkgb": "2.0.0"},
			MaxCeiling: "99.0.0",
			Repos: []string{
				"https://github.com/example/pkga",
				"https://github.com/example/pkgb",
			},
		})
		require.NoError(t, err)

		repoA := &doubles.SpyGitRepository{RepoPath: filepath.Join("repos", "pkga"), Tag: tagA}
		repoB := &doubles.SpyGitRepository{RepoPath: filepath.Join("repos", "pkgb"), Tag: tagB}
		gits := &doubles.SpyGitSource{Repos: map[string]*doubles.SpyGitRepository{
			repoA.RepoPath: repoA,
			repoB.RepoPath: repoB,
		}}
		manifests := &doubles.SpyManifestRepository{Manifests: map[string]*entities.Manifest{
			filepath.Join(repoA.RepoPath, entities.ManifestFileName): {Name: "pkga"},
			filepath.Join(repoB.RepoPath, entities.ManifestFileName): {Name: "pkgb"},
		}}
		policies := &doubles.SpyPolicyRepository{Policy: policy}

		return policy, commands.NewSyncPolicyCommand(gits, manifests, policies), policies
	}

	t.Run("should not touch the document when versions match", func(t *testing.T) {
		// given
		policy, cmd, policies := newWorld(t, "2.0.0", "2.0.0")

		// when
		err := cmd.Execute(policy, commands.SyncPolicyOptions{
			RepoDir: "repos", PolicyPath: "masspub.yaml", DoIt: true,
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, policies.Writes)
	})

	t.Run("should only report drift without doit", func(t *testing.T) {
		// given
		policy, cmd, policies := newWorld(t, "2.1.0", "2.0.0")

		// when
		err := cmd.Execute(policy, commands.SyncPolicyOptions{
			RepoDir: "repos", PolicyPath: "masspub.yaml",
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, policies.Writes)
	})

	t.Run("should persist drifted versions with doit", func(t *testing.T) {
		// given
		policy, cmd, policies := newWorld(t, "2.1.0", "2.0.0")

		// when
		err := cmd.Execute(policy, commands.SyncPolicyOptions{
			RepoDir: "repos", PolicyPath: "masspub.yaml", DoIt: true,
		})

		// then
		require.NoError(t, err)
		require.Len(t, policies.Writes, 1)
		assert.Equal(t, map[string]string{"pkga": "2.1.0"}, policies.Writes[0])
	})
}
