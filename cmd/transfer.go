package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"vimeomover/internal/export"
	"vimeomover/internal/progress"
	"vimeomover/internal/prompt"
	"vimeomover/internal/transfer"
	"vimeomover/internal/vimeo"
	"vimeomover/pkg/utils"
)

func addTransferFlags(cmd *cobra.Command) {
	cmd.Flags().String("folder", "", "Folder URI to export (skips the folder prompt)")
	cmd.Flags().String("quality", "", "Rendition quality such as 720p (skips the quality prompt)")
	cmd.Flags().Int("start-offset", 0, "Skip the first N videos of the plan, e.g. the resume offset of a failed run")
	cmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	cmd.Flags().Bool("dry-run", false, "Print the transfer plan without moving any video")
	cmd.Flags().Int("timeout", 0, "Timeout in seconds for the whole run (0 = no limit)")
}

func transferOptions(cmd *cobra.Command) export.Options {
	folder, _ := cmd.Flags().GetString("folder")
	quality, _ := cmd.Flags().GetString("quality")
	offset, _ := cmd.Flags().GetInt("start-offset")
	confirm, _ := cmd.Flags().GetBool("confirm")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	return export.Options{
		FolderURI:   folder,
		Quality:     quality,
		StartOffset: offset,
		DryRun:      dryRun,
		AssumeYes:   confirm,
	}
}

// newRunner wires the Vimeo client, the console prompt and a pipeline
// writing to dest. Prompts and progress go to stderr so stdout stays JSON.
func newRunner(cmd *cobra.Command, dest transfer.Destination) (*export.Runner, error) {
	client, err := vimeo.New(cfg)
	if err != nil {
		return nil, err
	}

	stageDir, _ := cmd.Flags().GetString("stage-dir")
	console := prompt.NewConsole(cmd.InOrStdin(), cmd.ErrOrStderr())

	var pipeline *transfer.Pipeline
	if dest != nil {
		pipeline = transfer.New(client, dest, transfer.Options{
			StageDir: stageDir,
			Reporter: progress.NewReporter(progress.Options{Output: cmd.ErrOrStderr()}),
		})
	}

	return &export.Runner{
		Lister:    client,
		Chooser:   console,
		Confirmer: console,
		Pipeline:  pipeline,
		Out:       cmd.ErrOrStderr(),
	}, nil
}

// runTransfer executes one export and prints the outcome as JSON.
func runTransfer(cmd *cobra.Command, command string, dest transfer.Destination) error {
	runner, err := newRunner(cmd, dest)
	if err != nil {
		utils.PrintError(err, command)
		return err
	}

	ctx, stop := commandContext(cmd)
	defer stop()

	opts := transferOptions(cmd)
	if isVerbose(cmd) {
		cmd.PrintErrf("Starting %s operation...\n", command)
		cmd.PrintErrf("  Destination: %s\n", dest.Name())
		if opts.DryRun {
			cmd.PrintErrln("  DRY RUN MODE: No videos will actually be transferred")
		}
	}

	plan, result, err := runner.Run(ctx, opts)
	switch {
	case errors.Is(err, export.ErrNoFolders), errors.Is(err, export.ErrNoVideos):
		cmd.PrintErrf("Nothing to transfer: %v\n", err)
		return nil
	case errors.Is(err, export.ErrDeclined):
		cmd.PrintErrln("Transfer cancelled.")
		return nil
	case err != nil:
		if result != nil {
			if printErr := utils.PrintJSON(result); printErr != nil {
				utils.PrintError(printErr, command)
			}
			if ctx.Err() != nil {
				cmd.PrintErrln("Transfer interrupted.")
			}
			cmd.PrintErrf("%d of %d videos transferred. Resume with --start-offset %d\n",
				result.ResumeOffset, result.TotalFiles, result.ResumeOffset)
		}
		utils.PrintError(err, command)
		return err
	}

	output := any(result)
	if result == nil {
		output = plan
	}
	if err := utils.PrintJSON(output); err != nil {
		utils.PrintError(err, command)
		return err
	}

	if isVerbose(cmd) && result != nil {
		cmd.PrintErrf("%s operation completed successfully\n", command)
	}
	return nil
}
