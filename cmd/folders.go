package cmd

import (
	"github.com/spf13/cobra"

	"vimeomover/internal/models"
	"vimeomover/internal/vimeo"
	"vimeomover/pkg/utils"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List the folders of the Vimeo account",
	Long: `List every folder of the configured Vimeo user, sorted by name.
The user and token are taken from VIMEO_USER_ID and VIMEO_API_KEY.`,
	Example: `  # List folders
  vimeomover folders

  # Verbose output
  vimeomover folders --verbose`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFolders(cmd)
	},
}

func runFolders(cmd *cobra.Command) error {
	client, err := vimeo.New(cfg)
	if err != nil {
		utils.PrintError(err, "folders")
		return err
	}

	ctx, stop := commandContext(cmd)
	defer stop()

	if isVerbose(cmd) {
		cmd.PrintErrf("Listing folders for user: %s\n", cfg.VimeoUserID)
	}

	folders, err := client.ListFolders(ctx)
	if err != nil {
		utils.PrintError(err, "folders")
		return err
	}

	if err := utils.PrintJSON(models.FolderList{Folders: folders, Total: len(folders)}); err != nil {
		utils.PrintError(err, "folders")
		return err
	}
	return nil
}

func init() {
	foldersCmd.Flags().Int("timeout", 300, "Timeout in seconds for the operation")
}
