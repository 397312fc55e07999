// Package export drives one interactive run: pick a folder, pick a quality,
// resolve the folder's videos and hand the session to a transfer pipeline.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"vimeomover/internal/models"
	"vimeomover/internal/prompt"
	"vimeomover/internal/rendition"
	"vimeomover/internal/transfer"
	"vimeomover/pkg/utils"
)

var (
	ErrNoFolders = errors.New("no folders found")
	ErrNoVideos  = errors.New("no videos found in folder")
	ErrDeclined  = errors.New("transfer declined")
)

// Lister is the read side of the video catalog.
type Lister interface {
	ListFolders(ctx context.Context) ([]models.Folder, error)
	ListVideos(ctx context.Context, folder models.Folder) ([]models.Video, error)
}

// Confirmer asks a yes/no question before anything is transferred.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

type Options struct {
	// FolderURI and Quality skip the matching prompt when set.
	FolderURI string
	Quality   string

	StartOffset int
	DryRun      bool

	// AssumeYes skips the confirmation prompt.
	AssumeYes bool
}

type Runner struct {
	Lister    Lister
	Chooser   prompt.Chooser
	Confirmer Confirmer
	Pipeline  *transfer.Pipeline

	// Out receives the human-readable plan summary. Default: io.Discard
	Out io.Writer
}

// Renditions lists the transfer targets of one folder.
func (r *Runner) Renditions(ctx context.Context, folderURI string) (*models.PlanResult, error) {
	folder, videos, err := r.selectVideos(ctx, folderURI)
	if err != nil {
		return nil, err
	}

	targets := rendition.AvailableTargets(videos)
	return &models.PlanResult{
		FolderName: folder.Name,
		FolderURI:  folder.URI,
		Targets:    targets,
		TotalFiles: len(videos),
	}, nil
}

// Plan resolves a folder and quality into a transfer session without
// moving any bytes.
func (r *Runner) Plan(ctx context.Context, opts Options) (*models.PlanResult, error) {
	folder, videos, err := r.selectVideos(ctx, opts.FolderURI)
	if err != nil {
		return nil, err
	}

	targets := rendition.AvailableTargets(videos)
	if len(targets) == 0 {
		return nil, fmt.Errorf("folder %q: %w", folder.Name, rendition.ErrNoVariantAvailable)
	}

	quality := opts.Quality
	if quality == "" {
		options := make([]string, len(targets))
		for i, target := range targets {
			options[i] = fmt.Sprintf("%s (%s)", target.Quality, target.AggregateSizeHuman)
		}
		choice, err := r.choose("Select a quality:", options)
		if err != nil {
			return nil, fmt.Errorf("quality selection: %w", err)
		}
		quality = targets[choice].Quality
	}

	items, err := rendition.Resolve(videos, quality)
	if err != nil {
		return nil, err
	}

	session, err := transfer.NewSession(items, opts.StartOffset)
	if err != nil {
		return nil, err
	}

	slog.Debug("Plan resolved", "folder", folder.Name, "quality", quality, "items", len(items))

	return &models.PlanResult{
		FolderName:     folder.Name,
		FolderURI:      folder.URI,
		Quality:        quality,
		Targets:        targets,
		Session:        session,
		TotalFiles:     len(items),
		TotalSizeHuman: utils.FormatBytes(session.TotalSizeBytes),
		DryRun:         opts.DryRun,
	}, nil
}

// Run plans and then transfers. A dry run returns the plan with a nil
// result. On a failed transfer the partial result is returned with the error.
func (r *Runner) Run(ctx context.Context, opts Options) (*models.PlanResult, *models.TransferResult, error) {
	if r.Pipeline == nil {
		return nil, nil, fmt.Errorf("no transfer pipeline configured")
	}

	plan, err := r.Plan(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	out := r.output()
	fmt.Fprintf(out, "Folder '%s': %d videos at %s, %s in total.\n",
		plan.FolderName, plan.TotalFiles, plan.Quality, plan.TotalSizeHuman)
	if plan.Session.StartOffset > 0 {
		fmt.Fprintf(out, "Skipping the first %d videos, %s left to transfer.\n",
			plan.Session.StartOffset, utils.FormatBytes(plan.Session.PendingSizeBytes()))
	}

	if opts.DryRun {
		return plan, nil, nil
	}

	if !opts.AssumeYes && r.Confirmer != nil {
		ok, err := r.Confirmer.Confirm(fmt.Sprintf("Transfer to %s?", r.Pipeline.Destination()))
		if err != nil {
			return plan, nil, err
		}
		if !ok {
			return plan, nil, ErrDeclined
		}
	}

	if err := r.Pipeline.Prepare(ctx); err != nil {
		return plan, nil, err
	}

	result, err := r.Pipeline.Run(ctx, plan.Session)
	return plan, result, err
}

func (r *Runner) selectVideos(ctx context.Context, folderURI string) (models.Folder, []models.Video, error) {
	folders, err := r.Lister.ListFolders(ctx)
	if err != nil {
		return models.Folder{}, nil, fmt.Errorf("failed to list folders: %w", err)
	}
	if len(folders) == 0 {
		return models.Folder{}, nil, ErrNoFolders
	}

	folder, err := r.selectFolder(folders, folderURI)
	if err != nil {
		return models.Folder{}, nil, err
	}

	videos, err := r.Lister.ListVideos(ctx, folder)
	if err != nil {
		return folder, nil, fmt.Errorf("failed to list videos in %q: %w", folder.Name, err)
	}
	if len(videos) == 0 {
		return folder, nil, fmt.Errorf("%w %q", ErrNoVideos, folder.Name)
	}
	return folder, videos, nil
}

func (r *Runner) selectFolder(folders []models.Folder, uri string) (models.Folder, error) {
	if uri != "" {
		for _, folder := range folders {
			if folder.URI == uri {
				return folder, nil
			}
		}
		return models.Folder{}, fmt.Errorf("folder %s not found", uri)
	}

	names := make([]string, len(folders))
	for i, folder := range folders {
		names[i] = folder.Name
	}
	choice, err := r.choose("Select a folder:", names)
	if err != nil {
		return models.Folder{}, fmt.Errorf("folder selection: %w", err)
	}
	return folders[choice], nil
}

func (r *Runner) choose(title string, options []string) (int, error) {
	if r.Chooser == nil {
		return 0, prompt.ErrNoInput
	}
	return r.Chooser.Choose(title, options)
}

func (r *Runner) output() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}
