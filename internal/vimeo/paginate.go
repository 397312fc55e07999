package vimeo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"vimeomover/internal/models"
)

// PageFunc fetches the single page addressed by pageURL.
type PageFunc[T any] func(ctx context.Context, pageURL string) (*models.Page[T], error)

// FetchAll follows the next-page cursor from initialURL until a page carries
// none, returning every item in the order received. Relative cursors are
// resolved against base. Any failed page fails the whole call.
func FetchAll[T any](ctx context.Context, base *url.URL, initialURL string, fetch PageFunc[T]) ([]T, error) {
	items := make([]T, 0)
	seen := make(map[string]bool)

	pageURL := initialURL
	for {
		if seen[pageURL] {
			return nil, fmt.Errorf("pagination cursor repeated: %s", pageURL)
		}
		seen[pageURL] = true

		page, err := fetch(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Data...)

		next := page.NextCursor()
		if next == "" {
			return items, nil
		}

		pageURL, err = resolveCursor(base, next)
		if err != nil {
			return nil, err
		}
		slog.Debug("Fetching next page of data", "url", pageURL, "items_so_far", len(items))
	}
}

func resolveCursor(base *url.URL, next string) (string, error) {
	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("invalid next page cursor %q: %w", next, err)
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}
