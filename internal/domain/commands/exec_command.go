package commands

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/mass-publish/masspub/internal/domain/entities"
)

// Exec is the interface for the cross-repo git passthrough command.
type Exec interface {
	Execute(ctx context.Context, policy *entities.VersionPolicy, repoDir string, args []string) error
}

// ExecCommand runs an arbitrary git command in every managed repository,
// streaming output. This is an operator convenience and deliberately
// bypasses the source-control capability: the arguments are whatever the
// operator typed. A failure in one repository is reported and the sweep
// continues.
type ExecCommand struct{}

// NewExecCommand creates an ExecCommand.
func NewExecCommand() *ExecCommand {
	return &ExecCommand{}
}

// Execute runs `git <args...>` in each repository in list order.
func (it *ExecCommand) Execute(
	ctx context.Context,
	policy *entities.VersionPolicy,
	repoDir string,
	args []string,
) error {
	for _, repoURL := range policy.Repos {
		dirName := repoDirName(repoURL)
		logger.Infof("%s:", dirName)

		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = filepath.Join(repoDir, dirName)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Warnf("%s: git %v: %v", dirName, args, err)
		}
	}

	return nil
}
