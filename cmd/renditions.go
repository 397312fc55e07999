package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"vimeomover/internal/export"
	"vimeomover/pkg/utils"
)

var renditionsCmd = &cobra.Command{
	Use:   "renditions [folder-uri]",
	Short: "Show the qualities available in a folder",
	Long: `Show every rendition quality offered by the videos of a folder together with
the total size a transfer at that quality would move.

Without a folder URI the folder is picked from a menu.`,
	Example: `  # Pick the folder interactively
  vimeomover renditions

  # Known folder
  vimeomover renditions /users/42/projects/7`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRenditions(cmd, args)
	},
}

func runRenditions(cmd *cobra.Command, args []string) error {
	var folderURI string
	if len(args) == 1 {
		folderURI = args[0]
	}

	runner, err := newRunner(cmd, nil)
	if err != nil {
		utils.PrintError(err, "renditions")
		return err
	}

	ctx, stop := commandContext(cmd)
	defer stop()

	plan, err := runner.Renditions(ctx, folderURI)
	if errors.Is(err, export.ErrNoFolders) || errors.Is(err, export.ErrNoVideos) {
		cmd.PrintErrf("Nothing to list: %v\n", err)
		return nil
	}
	if err != nil {
		utils.PrintError(err, "renditions")
		return err
	}

	if err := utils.PrintJSON(plan); err != nil {
		utils.PrintError(err, "renditions")
		return err
	}
	return nil
}

func init() {
	renditionsCmd.Flags().Int("timeout", 300, "Timeout in seconds for the operation")
}
