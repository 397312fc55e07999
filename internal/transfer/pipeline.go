package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"vimeomover/internal/models"
	"vimeomover/internal/progress"
	"vimeomover/pkg/utils"
)

// Source opens a read stream for a transfer locator.
type Source interface {
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}

// Destination receives one stream per item. Setup runs once before the
// first Write.
type Destination interface {
	Name() string
	Setup(ctx context.Context) error
	Write(ctx context.Context, r io.Reader, item models.ResolvedItem) error
}

type Options struct {
	// StageDir, when set, spools each item to a temp file there before
	// writing it to the destination.
	StageDir string

	Reporter *progress.Reporter

	// Now is the clock used for elapsed time. Default: time.Now
	Now func() time.Time
}

type Pipeline struct {
	source Source
	dest   Destination
	opts   Options
}

func New(source Source, dest Destination, opts Options) *Pipeline {
	if opts.Reporter == nil {
		opts.Reporter = progress.NewReporter(progress.Options{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{source: source, dest: dest, opts: opts}
}

func (p *Pipeline) Destination() string {
	return p.dest.Name()
}

// Prepare performs the destination handshake.
func (p *Pipeline) Prepare(ctx context.Context) error {
	if err := p.dest.Setup(ctx); err != nil {
		return fmt.Errorf("failed to set up destination %s: %w", p.dest.Name(), err)
	}
	if p.opts.StageDir != "" {
		if err := utils.EnsureDir(p.opts.StageDir); err != nil {
			return err
		}
	}
	return nil
}

// Run transfers the session's items one at a time from StartOffset. The first
// failure stops the run; items already committed stay where they are and the
// returned result carries the offset to resume from.
func (p *Pipeline) Run(ctx context.Context, session *models.TransferSession) (*models.TransferResult, error) {
	if session == nil {
		return nil, fmt.Errorf("transfer session is nil")
	}
	if session.StartOffset < 0 || session.StartOffset > len(session.Items) {
		return nil, fmt.Errorf("%w: %d (plan has %d items)", ErrInvalidOffset, session.StartOffset, len(session.Items))
	}

	start := p.opts.Now()
	pending := session.Pending()
	planned := session.PendingSizeBytes()

	result := &models.TransferResult{
		RunID:         uuid.NewString(),
		Destination:   p.dest.Name(),
		Items:         make([]models.TransferItem, len(pending)),
		TotalFiles:    len(session.Items),
		StartOffset:   session.StartOffset,
		ResumeOffset:  session.StartOffset,
		OperationTime: utils.FormatTime(start),
	}
	for i, item := range pending {
		result.Items[i] = models.TransferItem{
			Index:      session.StartOffset + i,
			FileName:   item.FileName,
			SourcePath: item.SourceLocator,
			Size:       item.SizeBytes,
			Status:     models.StatusPending,
		}
	}

	slog.Info("Starting transfer",
		"run_id", result.RunID,
		"destination", result.Destination,
		"items", len(pending),
		"skipped", session.StartOffset,
		"planned", utils.FormatBytes(planned),
	)

	var transferred int64
	for i, item := range pending {
		index := session.StartOffset + i
		status := &result.Items[i]

		eta, ok := progress.EstimateRemaining(planned, transferred, p.opts.Now().Sub(start))
		p.opts.Reporter.ItemStarted(index+1, len(session.Items), item.FileName, item.SizeBytes, eta, ok)

		status.Status = models.StatusStreaming
		written, err := p.transferItem(ctx, item)
		status.BytesWritten = written
		if err != nil {
			status.Status = models.StatusFailed
			status.Error = err.Error()
			p.opts.Reporter.ItemFailed(index+1, item.FileName, err)
			p.finish(result, start)
			slog.Error("Transfer halted", "run_id", result.RunID, "item", index+1, "error", err)
			return result, &ItemError{Index: index, FileName: item.FileName, Err: err}
		}

		status.Status = models.StatusCommitted
		transferred += item.SizeBytes
		result.CommittedFiles++
		result.ResumeOffset = index + 1
		result.TotalSizeBytes += item.SizeBytes
		slog.Debug("Item committed", "item", index+1, "file", item.FileName, "bytes", written)
	}

	elapsed := p.finish(result, start)
	p.opts.Reporter.Finished(result.CommittedFiles, result.TotalSizeBytes, elapsed)
	return result, nil
}

func (p *Pipeline) finish(result *models.TransferResult, start time.Time) time.Duration {
	elapsed := p.opts.Now().Sub(start)
	result.TotalSizeHuman = utils.FormatBytes(result.TotalSizeBytes)
	result.TransferDuration = elapsed.String()
	return elapsed
}

func (p *Pipeline) transferItem(ctx context.Context, item models.ResolvedItem) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	body, err := p.source.Open(ctx, item.SourceLocator)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	if p.opts.StageDir != "" {
		return p.stageAndWrite(ctx, body, item)
	}

	counter := &countingReader{r: body}
	if err := p.dest.Write(ctx, counter, item); err != nil {
		return counter.n, fmt.Errorf("write to %s failed: %w", p.dest.Name(), err)
	}
	return counter.n, nil
}

func (p *Pipeline) stageAndWrite(ctx context.Context, body io.Reader, item models.ResolvedItem) (int64, error) {
	staged, err := os.CreateTemp(p.opts.StageDir, "vimeomover-*.part")
	if err != nil {
		return 0, fmt.Errorf("failed to create staging file: %w", err)
	}
	defer func() {
		staged.Close()
		if err := utils.CleanupTempFile(staged.Name()); err != nil {
			slog.Warn("Failed to remove staging file", "error", err)
		}
	}()

	if _, err := io.Copy(staged, body); err != nil {
		return 0, fmt.Errorf("failed to stage %s: %w", item.FileName, err)
	}
	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to rewind staging file: %w", err)
	}

	counter := &countingReader{r: staged}
	if err := p.dest.Write(ctx, counter, item); err != nil {
		return counter.n, fmt.Errorf("write to %s failed: %w", p.dest.Name(), err)
	}
	return counter.n, nil
}
