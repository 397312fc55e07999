// Package testutils provides a fake Vimeo API and payload helpers for tests.
package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"vimeomover/internal/models"
)

// FakeVimeo serves folder and video listings with cursor pagination plus the
// download payloads the listed variants point to.
type FakeVimeo struct {
	Server   *httptest.Server
	UserID   string
	Token    string
	PageSize int

	mu        sync.Mutex
	folders   []models.Folder
	videos    map[string][]models.Video
	files     map[string][]byte
	failures  map[string]int
	requests  []string
	authByURL map[string]string
}

func NewFakeVimeo(t *testing.T, userID string) *FakeVimeo {
	t.Helper()

	f := &FakeVimeo{
		UserID:    userID,
		Token:     "test-token",
		PageSize:  2,
		videos:    make(map[string][]models.Video),
		files:     make(map[string][]byte),
		failures:  make(map[string]int),
		authByURL: make(map[string]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeVimeo) AddFolder(name, uri string) models.Folder {
	f.mu.Lock()
	defer f.mu.Unlock()
	folder := models.Folder{Name: name, URI: uri}
	f.folders = append(f.folders, folder)
	return folder
}

func (f *FakeVimeo) AddVideo(folderURI string, video models.Video) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos[folderURI] = append(f.videos[folderURI], video)
}

// AddFile registers a payload and returns the absolute link serving it.
func (f *FakeVimeo) AddFile(name string, data []byte) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files["/files/"+name] = data
	return f.Server.URL + "/files/" + name
}

// FailPath makes every request to path answer with status.
func (f *FakeVimeo) FailPath(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
}

func (f *FakeVimeo) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeVimeo) AuthHeader(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authByURL[path]
}

func (f *FakeVimeo) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.RequestURI())
	f.authByURL[r.URL.Path] = r.Header.Get("Authorization")
	status, failing := f.failures[r.URL.Path]
	f.mu.Unlock()

	if failing {
		http.Error(w, `{"error":"forced failure"}`, status)
		return
	}

	switch {
	case strings.HasPrefix(r.URL.Path, "/files/"):
		f.serveFile(w, r)
	case r.URL.Path == "/users/"+f.UserID+"/folders":
		f.mu.Lock()
		folders := append([]models.Folder(nil), f.folders...)
		f.mu.Unlock()
		writePage(w, r, folders, f.PageSize)
	case strings.HasSuffix(r.URL.Path, "/videos"):
		folderURI := strings.TrimSuffix(r.URL.Path, "/videos")
		f.mu.Lock()
		videos, ok := f.videos[folderURI]
		videos = append([]models.Video(nil), videos...)
		f.mu.Unlock()
		if !ok && !f.hasFolder(folderURI) {
			http.NotFound(w, r)
			return
		}
		writePage(w, r, videos, f.PageSize)
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeVimeo) hasFolder(uri string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, folder := range f.folders {
		if folder.URI == uri {
			return true
		}
	}
	return false
}

func (f *FakeVimeo) serveFile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	data, ok := f.files[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func writePage[T any](w http.ResponseWriter, r *http.Request, items []T, pageSize int) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if pageSize <= 0 {
		pageSize = len(items) + 1
	}

	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	body := models.Page[T]{
		Total:   len(items),
		Page:    page,
		PerPage: pageSize,
		Data:    items[start:end],
	}
	if body.Data == nil {
		body.Data = []T{}
	}
	if end < len(items) {
		query := r.URL.Query()
		query.Set("page", strconv.Itoa(page+1))
		next := (&url.URL{Path: r.URL.Path, RawQuery: query.Encode()}).String()
		body.Paging.Next = &next
	}

	w.Header().Set("Content-Type", "application/vnd.vimeo.video+json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("encode page: %v", err), http.StatusInternalServerError)
	}
}

// GenerateTestData returns size bytes of a deterministic pattern.
func GenerateTestData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func Int64Ptr(n int64) *int64 { return &n }
