package vimeo

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"vimeomover/internal/models"
)

func strPtr(s string) *string { return &s }

// scriptedPages serves pages keyed by absolute URL and records the fetch order.
type scriptedPages struct {
	pages   map[string]*models.Page[int]
	fail    map[string]error
	fetched []string
}

func (s *scriptedPages) fetch(_ context.Context, pageURL string) (*models.Page[int], error) {
	s.fetched = append(s.fetched, pageURL)
	if err, ok := s.fail[pageURL]; ok {
		return nil, err
	}
	page, ok := s.pages[pageURL]
	if !ok {
		return nil, errors.New("unexpected page " + pageURL)
	}
	return page, nil
}

func TestFetchAll(t *testing.T) {
	base, _ := url.Parse("https://api.example.com")

	tests := []struct {
		name        string
		pages       map[string]*models.Page[int]
		expected    []int
		fetched     []string
		expectEmpty bool
	}{
		{
			name: "Single page",
			pages: map[string]*models.Page[int]{
				"https://api.example.com/items?page=1": {Data: []int{1, 2, 3}},
			},
			expected: []int{1, 2, 3},
			fetched:  []string{"https://api.example.com/items?page=1"},
		},
		{
			name: "Three pages in order",
			pages: map[string]*models.Page[int]{
				"https://api.example.com/items?page=1": {Data: []int{1, 2}, Paging: models.Paging{Next: strPtr("/items?page=2")}},
				"https://api.example.com/items?page=2": {Data: []int{3, 4}, Paging: models.Paging{Next: strPtr("/items?page=3")}},
				"https://api.example.com/items?page=3": {Data: []int{5}},
			},
			expected: []int{1, 2, 3, 4, 5},
			fetched: []string{
				"https://api.example.com/items?page=1",
				"https://api.example.com/items?page=2",
				"https://api.example.com/items?page=3",
			},
		},
		{
			name: "Duplicates are kept",
			pages: map[string]*models.Page[int]{
				"https://api.example.com/items?page=1": {Data: []int{7}, Paging: models.Paging{Next: strPtr("/items?page=2")}},
				"https://api.example.com/items?page=2": {Data: []int{7}},
			},
			expected: []int{7, 7},
			fetched: []string{
				"https://api.example.com/items?page=1",
				"https://api.example.com/items?page=2",
			},
		},
		{
			name: "Empty first page",
			pages: map[string]*models.Page[int]{
				"https://api.example.com/items?page=1": {},
			},
			expected:    []int{},
			fetched:     []string{"https://api.example.com/items?page=1"},
			expectEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := &scriptedPages{pages: tt.pages}

			result, err := FetchAll(context.Background(), base, "https://api.example.com/items?page=1", pages.fetch)
			if err != nil {
				t.Fatalf("FetchAll() error = %v", err)
			}

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("FetchAll() = %v, want %v", result, tt.expected)
			}
			if !reflect.DeepEqual(pages.fetched, tt.fetched) {
				t.Errorf("FetchAll() fetched %v, want %v", pages.fetched, tt.fetched)
			}
			if tt.expectEmpty && result == nil {
				t.Error("FetchAll() returned nil for an empty listing, want empty slice")
			}
		})
	}
}

func TestFetchAllFailureDiscardsPartialResult(t *testing.T) {
	base, _ := url.Parse("https://api.example.com")
	failure := errors.New("boom")
	pages := &scriptedPages{
		pages: map[string]*models.Page[int]{
			"https://api.example.com/items?page=1": {Data: []int{1}, Paging: models.Paging{Next: strPtr("/items?page=2")}},
			"https://api.example.com/items?page=3": {Data: []int{3}},
		},
		fail: map[string]error{"https://api.example.com/items?page=2": failure},
	}

	result, err := FetchAll(context.Background(), base, "https://api.example.com/items?page=1", pages.fetch)
	if !errors.Is(err, failure) {
		t.Fatalf("FetchAll() error = %v, want %v", err, failure)
	}
	if result != nil {
		t.Errorf("FetchAll() = %v, want nil on failure", result)
	}
	if len(pages.fetched) != 2 {
		t.Errorf("FetchAll() fetched %d pages, want 2", len(pages.fetched))
	}
}

func TestFetchAllRepeatedCursor(t *testing.T) {
	base, _ := url.Parse("https://api.example.com")
	pages := &scriptedPages{
		pages: map[string]*models.Page[int]{
			"https://api.example.com/items?page=1": {Data: []int{1}, Paging: models.Paging{Next: strPtr("/items?page=1")}},
		},
	}

	if _, err := FetchAll(context.Background(), base, "https://api.example.com/items?page=1", pages.fetch); err == nil {
		t.Error("FetchAll() expected error for a repeated cursor")
	}
}

func TestResolveCursor(t *testing.T) {
	base, _ := url.Parse("https://api.vimeo.com")

	tests := []struct {
		name     string
		next     string
		expected string
	}{
		{"Relative path", "/users/1/folders?page=2", "https://api.vimeo.com/users/1/folders?page=2"},
		{"Absolute URL", "https://other.example.com/x?page=2", "https://other.example.com/x?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := resolveCursor(base, tt.next)
			if err != nil {
				t.Fatalf("resolveCursor() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("resolveCursor() = %s, want %s", result, tt.expected)
			}
		})
	}
}
