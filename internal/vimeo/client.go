package vimeo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"

	appConfig "vimeomover/config"
	"vimeomover/internal/models"
)

const (
	acceptHeader = "application/vnd.vimeo.*+json;version=3.4"
	folderFields = "name,uri"
	videoFields  = "name,created_time,download.link,download.rendition,download.size"
	maxErrorBody = 4096
)

type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	token      string
	userID     string
	pageSize   int
	limiter    *rate.Limiter
}

func New(cfg *appConfig.Config) (*Client, error) {
	if cfg.VimeoURL == "" {
		return nil, fmt.Errorf("vimeo API URL is not configured")
	}
	baseURL, err := url.Parse(strings.TrimSuffix(cfg.VimeoURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid vimeo API URL %q: %w", cfg.VimeoURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid vimeo API URL %q: scheme and host are required", cfg.VimeoURL)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = appConfig.DefaultPageSize
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:  baseURL,
		token:    cfg.VimeoToken,
		userID:   cfg.VimeoUserID,
		pageSize: pageSize,
		limiter:  limiter,
	}, nil
}

func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// GetPage fetches and decodes one page of a listing.
func GetPage[T any](ctx context.Context, c *Client, pageURL string) (*models.Page[T], error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.do(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("unable to get list: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read list response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unable to get list: %w", newHTTPError(resp, pageURL, body))
	}

	var page *models.Page[T]
	if err := sonic.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if page == nil {
		return nil, ErrParse
	}

	return page, nil
}

func (c *Client) ListFolders(ctx context.Context) ([]models.Folder, error) {
	if c.userID == "" {
		return nil, fmt.Errorf("vimeo user id is not configured")
	}

	slog.Info("Fetching list of folders...")
	query := c.listQuery("name", "asc", folderFields)
	foldersURL := c.endpoint("/users/"+url.PathEscape(c.userID)+"/folders", query)

	return FetchAll(ctx, c.baseURL, foldersURL, func(ctx context.Context, pageURL string) (*models.Page[models.Folder], error) {
		return GetPage[models.Folder](ctx, c, pageURL)
	})
}

func (c *Client) ListVideos(ctx context.Context, folder models.Folder) ([]models.Video, error) {
	if folder.URI == "" {
		return nil, fmt.Errorf("folder %q has no uri", folder.Name)
	}

	slog.Info("Fetching list of videos...", "folder", folder.Name)
	query := c.listQuery("date", "desc", videoFields)
	videosURL := c.endpoint(strings.TrimSuffix(folder.URI, "/")+"/videos", query)

	return FetchAll(ctx, c.baseURL, videosURL, func(ctx context.Context, pageURL string) (*models.Page[models.Video], error) {
		return GetPage[models.Video](ctx, c, pageURL)
	})
}

// Open starts streaming the payload behind a download link.
func (c *Client) Open(ctx context.Context, link string) (io.ReadCloser, error) {
	if link == "" {
		return nil, fmt.Errorf("download link is empty")
	}

	resp, err := c.do(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("failed to open download: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("failed to open download: %w", newHTTPError(resp, link, body))
	}

	return resp.Body, nil
}

func (c *Client) do(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if c.token != "" && c.sameOrigin(req.URL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

// sameOrigin keeps the API token off third-party download hosts.
func (c *Client) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, c.baseURL.Scheme) && strings.EqualFold(u.Host, c.baseURL.Host)
}

func (c *Client) listQuery(sort, direction, fields string) url.Values {
	query := url.Values{}
	query.Set("sort", sort)
	query.Set("direction", direction)
	query.Set("fields", fields)
	query.Set("per_page", strconv.Itoa(c.pageSize))
	query.Set("page", "1")
	return query
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.BaseURL()
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func newHTTPError(resp *http.Response, target string, body []byte) *HTTPError {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Body:       text,
		URL:        target,
	}
}
