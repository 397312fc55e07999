package rendition

import (
	"errors"
	"testing"
	"time"

	"vimeomover/internal/models"
)

func sized(label string, size int64) models.Variant {
	return models.Variant{Quality: label, Link: "https://cdn.example.com/" + label, Size: &size}
}

func TestAggregateSize(t *testing.T) {
	exact := []models.Video{
		{Variants: []models.Variant{sized("720p", 100)}},
		{Variants: []models.Variant{sized("720p", 200)}},
		{Variants: []models.Variant{sized("720p", 300)}},
	}
	if total := AggregateSize(exact, "720p"); total != 600 {
		t.Errorf("AggregateSize() = %d, want 600", total)
	}

	mixed := []models.Video{
		{Variants: []models.Variant{sized("240p", 10), sized("1080p", 1000)}},
		{Variants: []models.Variant{sized("720p", 70), sized("1080p", 900)}},
		{Variants: []models.Variant{{Quality: "480p", Link: "x"}}},
		{},
	}
	// 480p: 240p (10) + 720p (70) + unmeasured 480p (0) + no variants (0)
	if total := AggregateSize(mixed, "480p"); total != 80 {
		t.Errorf("AggregateSize(480p) = %d, want 80", total)
	}
}

func TestAvailableTargets(t *testing.T) {
	videos := []models.Video{
		{Variants: []models.Variant{sized("1080p", 1000), sized("360p", 100)}},
		{Variants: []models.Variant{sized("720p", 500)}},
	}

	targets := AvailableTargets(videos)
	expected := []models.TransferTarget{
		{Quality: "360p", AggregateSizeBytes: 100 + 500},
		{Quality: "720p", AggregateSizeBytes: 100 + 500},
		{Quality: "1080p", AggregateSizeBytes: 1000 + 500},
	}

	if len(targets) != len(expected) {
		t.Fatalf("AvailableTargets() returned %d targets, want %d", len(targets), len(expected))
	}
	for i := range expected {
		if targets[i].Quality != expected[i].Quality || targets[i].AggregateSizeBytes != expected[i].AggregateSizeBytes {
			t.Errorf("targets[%d] = %+v, want %+v", i, targets[i], expected[i])
		}
		if targets[i].AggregateSizeHuman == "" {
			t.Errorf("targets[%d].AggregateSizeHuman is empty", i)
		}
	}
}

func TestResolve(t *testing.T) {
	videos := []models.Video{
		{
			Name:        "Sunday: Service",
			CreatedTime: "2024-03-01T18:30:05+00:00",
			Variants:    []models.Variant{sized("1080p", 1000), sized("540p", 400)},
		},
		{
			Name:        "Intro",
			CreatedTime: "2023-12-24T09:05:00+00:00",
			Variants:    []models.Variant{sized("1080p", 900)},
		},
	}

	items, err := Resolve(videos, "720p")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	expected := []models.ResolvedItem{
		{SourceLocator: "https://cdn.example.com/540p", FileName: "2024-03-01_18-30-05-Sunday_ Service.mp4", SizeBytes: 400},
		{SourceLocator: "https://cdn.example.com/1080p", FileName: "2023-12-24_09-05-00-Intro.mp4", SizeBytes: 900},
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("items[%d] = %+v, want %+v", i, items[i], expected[i])
		}
	}
}

func TestResolveNoVariant(t *testing.T) {
	videos := []models.Video{
		{Name: "Fine", CreatedTime: "2024-01-01T00:00:00+00:00", Variants: []models.Variant{sized("720p", 1)}},
		{Name: "Processing", CreatedTime: "2024-01-02T00:00:00+00:00"},
	}

	items, err := Resolve(videos, "720p")
	if !errors.Is(err, ErrNoVariantAvailable) {
		t.Fatalf("Resolve() error = %v, want ErrNoVariantAvailable", err)
	}
	if items != nil {
		t.Errorf("Resolve() = %v, want nil", items)
	}

	var noVariant *NoVariantError
	if !errors.As(err, &noVariant) {
		t.Fatalf("Resolve() error %T is not *NoVariantError", err)
	}
	if noVariant.Index != 1 || noVariant.Video != "Processing" {
		t.Errorf("NoVariantError = %+v, want index 1 for Processing", noVariant)
	}
}

func TestResolveMissingLink(t *testing.T) {
	videos := []models.Video{
		{Name: "Linkless", CreatedTime: "2024-01-01T00:00:00+00:00", Variants: []models.Variant{{Quality: "720p"}}},
	}

	if _, err := Resolve(videos, "720p"); !errors.Is(err, ErrNoVariantAvailable) {
		t.Errorf("Resolve() error = %v, want ErrNoVariantAvailable", err)
	}
}

func TestResolveInvalidCreatedTime(t *testing.T) {
	videos := []models.Video{
		{Name: "Undated", CreatedTime: "not a date", Variants: []models.Variant{sized("720p", 1)}},
	}

	if _, err := Resolve(videos, "720p"); err == nil {
		t.Error("Resolve() expected error for invalid created time")
	}
}

func TestResolveDisambiguatesNames(t *testing.T) {
	video := models.Video{Name: "Clip", CreatedTime: "2024-01-01T08:00:00+00:00", Variants: []models.Variant{sized("720p", 1)}}

	items, err := Resolve([]models.Video{video, video, video}, "720p")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	expected := []string{
		"2024-01-01_08-00-00-Clip.mp4",
		"2024-01-01_08-00-00-Clip-2.mp4",
		"2024-01-01_08-00-00-Clip-3.mp4",
	}
	for i, name := range expected {
		if items[i].FileName != name {
			t.Errorf("items[%d].FileName = %s, want %s", i, items[i].FileName, name)
		}
		if items[i].SourceLocator != items[0].SourceLocator {
			t.Errorf("items[%d].SourceLocator changed to %s", i, items[i].SourceLocator)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Clean name", "2024-01-01_08-00-00-Clip.mp4", "2024-01-01_08-00-00-Clip.mp4"},
		{"Colon", "Talk: Part 1.mp4", "Talk_ Part 1.mp4"},
		{"Run collapses", "a<>|b.mp4", "a_b.mp4"},
		{"Slashes", "dir/sub\\name.mp4", "dir_sub_name.mp4"},
		{"Trailing dots", "Wait...", "Wait_"},
		{"Colon and trailing dots", "Q: what...", "Q_ what_"},
		{"Invalid run before trailing dots", "end?..", "end_"},
		{"Control characters", "tab\there.mp4", "tab_here.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sanitize(tt.input)
			if result != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			if again := Sanitize(result); again != result {
				t.Errorf("Sanitize() not idempotent: %q -> %q", result, again)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	created := time.Date(2022, 11, 5, 21, 7, 9, 0, time.UTC)

	result := FileName(created, "Year End: Recap")
	expected := "2022-11-05_21-07-09-Year End_ Recap.mp4"
	if result != expected {
		t.Errorf("FileName() = %s, want %s", result, expected)
	}
}
