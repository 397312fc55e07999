package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"vimeomover/pkg/utils"
)

// Options configures the progress reporter.
type Options struct {
	// Output is where progress lines are written.
	// Default: os.Stderr
	Output io.Writer

	// Verb names the operation in progress lines, e.g. "Downloading".
	// Default: "Transferring"
	Verb string

	// Now supplies wall-clock time for line prefixes.
	// Default: time.Now
	Now func() time.Time
}

// Reporter prints one line per item and a closing summary.
type Reporter struct {
	opts Options
}

func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Verb == "" {
		opts.Verb = "Transferring"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Reporter{opts: opts}
}

// ItemStarted announces item position of count. eta is only printed when ok.
func (r *Reporter) ItemStarted(position, count int, name string, size int64, eta time.Duration, ok bool) {
	msg := fmt.Sprintf("%s %s '%s' %s %d out of %d",
		r.opts.Now().Format("2006-01-02 15:04:05"),
		r.opts.Verb,
		name,
		utils.FormatBytes(size),
		position,
		count,
	)
	if ok {
		msg += ". Estimated time remaining " + FormatDuration(eta)
	}
	fmt.Fprintf(r.opts.Output, "%s...\n", msg)
}

func (r *Reporter) ItemFailed(position int, name string, err error) {
	fmt.Fprintf(r.opts.Output, "Error transferring video %d '%s': %v\n", position, name, err)
}

func (r *Reporter) Finished(committed int, bytes int64, elapsed time.Duration) {
	fmt.Fprintf(r.opts.Output, "Elapsed time: %s\n", FormatDuration(elapsed))
	fmt.Fprintf(r.opts.Output, "Finished transferring %d videos (%s).\n", committed, utils.FormatBytes(bytes))
}
