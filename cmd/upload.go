package cmd

import (
	"github.com/spf13/cobra"

	"vimeomover/internal/blobstore"
	"vimeomover/internal/s3client"
	"vimeomover/internal/transfer"
	"vimeomover/pkg/utils"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Copy every video of a folder to S3 or a bucket URL",
	Long: `Copy every video of a Vimeo folder at the chosen rendition quality into object
storage.

By default videos are streamed straight into the configured S3 bucket. Use
--blob-url to target any gocloud.dev bucket URL instead (s3://, gs://, file://).
With --stage-dir each video is first written to a temporary file there.

The destination path in the bucket can be specified with the --destination flag.
If not specified, DESTINATION_PREFIX is used.`,
	Example: `  # Upload to the configured bucket
  vimeomover upload

  # Upload to a specific prefix of another bucket
  vimeomover upload --bucket my-other-bucket --destination "vimeo/2024"

  # Upload to Google Cloud Storage
  vimeomover upload --blob-url gs://archive --destination vimeo

  # Stage each video on disk before uploading
  vimeomover upload --stage-dir /var/tmp/vimeomover --confirm`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd)
	},
}

func runUpload(cmd *cobra.Command) error {
	destination, _ := cmd.Flags().GetString("destination")
	blobURL, _ := cmd.Flags().GetString("blob-url")

	if destination == "" {
		destination = cfg.DestinationPath
	}
	if blobURL == "" {
		blobURL = cfg.BlobURL
	}

	var dest transfer.Destination
	if blobURL != "" {
		bucket := blobstore.New(blobURL, destination)
		defer bucket.Close()
		dest = bucket
	} else {
		s3Config := *cfg
		s3Config.BucketName = getBucketName(cmd)
		s3Config.DestinationPath = destination

		client, err := s3client.New(&s3Config)
		if err != nil {
			utils.PrintError(err, "upload")
			return err
		}
		dest = client
	}

	return runTransfer(cmd, "upload", dest)
}

func init() {
	uploadCmd.Flags().StringP("destination", "d", "", "Destination path in the bucket (default: DESTINATION_PREFIX)")
	uploadCmd.Flags().String("blob-url", "", "gocloud.dev bucket URL to upload to instead of the S3 bucket")
	uploadCmd.Flags().String("stage-dir", "", "Stage each video in this directory before uploading")
	addTransferFlags(uploadCmd)
}
