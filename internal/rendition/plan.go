package rendition

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"vimeomover/internal/models"
	"vimeomover/pkg/utils"
)

const fileTimeLayout = "2006-01-02_15-04-05"

var ErrNoVariantAvailable = errors.New("no downloadable variant available")

// NoVariantError reports a video that cannot be planned for the chosen quality.
type NoVariantError struct {
	Index   int
	Video   string
	Quality string
}

func (e *NoVariantError) Error() string {
	return fmt.Sprintf("video %d %q has no downloadable variant for %s", e.Index+1, e.Video, e.Quality)
}

func (e *NoVariantError) Unwrap() error {
	return ErrNoVariantAvailable
}

// invalidFileChars covers characters rejected by common filesystems; the first
// alternative folds a trailing run of dots into the replacement.
var invalidFileChars = regexp.MustCompile(`([<>:"/\\|?*\x00-\x1f]*\.+$)|([<>:"/\\|?*\x00-\x1f]+)`)

// Sanitize replaces every run of invalid filename characters, and a trailing
// run of dots, with a single underscore.
func Sanitize(name string) string {
	return invalidFileChars.ReplaceAllString(name, "_")
}

// FileName builds the destination name for a video created at created.
func FileName(created time.Time, name string) string {
	return Sanitize(fmt.Sprintf("%s-%s.mp4", created.Format(fileTimeLayout), name))
}

// AvailableTargets lists every quality seen across videos together with the
// total size a transfer at that quality would move.
func AvailableTargets(videos []models.Video) []models.TransferTarget {
	labels := Labels(videos)
	targets := make([]models.TransferTarget, 0, len(labels))
	for _, label := range labels {
		size := AggregateSize(videos, label)
		targets = append(targets, models.TransferTarget{
			Quality:            label,
			AggregateSizeBytes: size,
			AggregateSizeHuman: utils.FormatBytes(size),
		})
	}
	return targets
}

// AggregateSize sums the matched variant size of every video for label.
// Unmatched or unmeasured variants count as 0.
func AggregateSize(videos []models.Video, label string) int64 {
	key := QualityKey(label)
	var total int64
	for _, video := range videos {
		if m := MatchVariant(video.Variants, key); m.Found() {
			total += m.Variant.SizeBytes()
		}
	}
	return total
}

// Resolve turns every video into a transfer-ready item for label. A video
// without a usable variant fails the whole plan.
func Resolve(videos []models.Video, label string) ([]models.ResolvedItem, error) {
	key := QualityKey(label)
	items := make([]models.ResolvedItem, 0, len(videos))
	used := make(map[string]int)

	for i, video := range videos {
		m := MatchVariant(video.Variants, key)
		if !m.Found() || m.Variant.Link == "" {
			return nil, &NoVariantError{Index: i, Video: video.Name, Quality: label}
		}

		created, err := dateparse.ParseAny(video.CreatedTime)
		if err != nil {
			return nil, fmt.Errorf("video %d %q: invalid created time %q: %w", i+1, video.Name, video.CreatedTime, err)
		}

		items = append(items, models.ResolvedItem{
			SourceLocator: m.Variant.Link,
			FileName:      uniqueName(used, FileName(created, video.Name)),
			SizeBytes:     m.Variant.SizeBytes(),
		})
	}

	return items, nil
}

// uniqueName appends -2, -3, ... before the extension of repeated names.
func uniqueName(used map[string]int, name string) string {
	lower := strings.ToLower(name)
	used[lower]++
	if used[lower] == 1 {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := used[lower]; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
		if used[strings.ToLower(candidate)] == 0 {
			used[strings.ToLower(candidate)] = 1
			used[lower] = n
			return candidate
		}
	}
}
