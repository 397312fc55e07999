package cmd

import (
	"github.com/spf13/cobra"

	"vimeomover/internal/transfer"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download every video of a folder to a local directory",
	Long: `Download every video of a Vimeo folder at the chosen rendition quality.

The command lists your folders and the qualities available in the chosen folder,
then downloads the videos one at a time, newest first. Files are named after the
video creation time and title.

If no destination is specified, DOWNLOAD_PATH is used.`,
	Example: `  # Pick folder and quality interactively
  vimeomover download

  # Download to a specific destination
  vimeomover download --destination /tmp/videos/

  # Non-interactive export of a known folder
  vimeomover download --folder /users/42/projects/7 --quality 720p --confirm

  # Resume a failed run after its first 12 videos
  vimeomover download --folder /users/42/projects/7 --quality 720p --start-offset 12`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd)
	},
}

func runDownload(cmd *cobra.Command) error {
	destination, _ := cmd.Flags().GetString("destination")

	if destination == "" {
		destination = cfg.DownloadPath
	}

	return runTransfer(cmd, "download", &transfer.LocalDestination{Dir: destination})
}

func init() {
	downloadCmd.Flags().StringP("destination", "d", "", "Local destination path (default: DOWNLOAD_PATH)")
	addTransferFlags(downloadCmd)
}
