package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "masspub",
		Short: "Coordinated release tool for interdependent packages",
		Long: `Coordinates releasing a set of interdependent packages to the package
index: rewrites manifest dependency constraints from a central version
policy, then tags, pushes, and confirms each release on the index before
the next dependent repository publishes.

Repositories are processed strictly in the order they are listed in the
policy document; list them in dependency order.`,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "masspub.yaml",
		"Path to the version policy document")
	cmd.PersistentFlags().String("repo-dir", "repos",
		"Directory holding the managed repository checkouts")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

// commandGroups creates the fixed subcommand groups controllers hang
// under.
func commandGroups(rootCmd *cobra.Command) map[string]*cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	repoCmd := &cobra.Command{
		Use:   "repo",
		Short: "Repository management",
	}
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Manifest and policy management",
	}
	rootCmd.AddCommand(repoCmd, manifestCmd)

	return map[string]*cobra.Command{
		"":         rootCmd,
		"repo":     repoCmd,
		"manifest": manifestCmd,
	}
}

func addSubcommands(rootCmd *cobra.Command, app *internal.App) {
	groups := commandGroups(rootCmd)

	for _, controller := range app.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if binder, ok := ctrl.(interface{ AddFlags(*cobra.Command) }); ok {
			binder.AddFlags(subCmd)
		}

		groups[bind.Parent].AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	app := injectApp()
	rootCmd := buildRootCommand()
	addSubcommands(rootCmd, app)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Error executing 'masspub': %s", err)
	}
}
