package transfer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vimeomover/internal/models"
)

type failingReader struct {
	after []byte
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.after) > 0 {
		n := copy(p, f.after)
		f.after = f.after[n:]
		return n, nil
	}
	return 0, errors.New("connection reset")
}

func TestLocalDestination(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	dest := &LocalDestination{Dir: dir}

	if err := dest.Setup(context.Background()); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	payload := []byte("video bytes")
	item := models.ResolvedItem{FileName: "2024-01-01_00-00-00-Clip.mp4", SizeBytes: int64(len(payload))}
	if err := dest.Write(context.Background(), bytes.NewReader(payload), item); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, item.FileName))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("file content = %q, want %q", data, payload)
	}

	if dest.Name() != dir {
		t.Errorf("Name() = %s, want %s", dest.Name(), dir)
	}
}

func TestLocalDestinationRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	dest := &LocalDestination{Dir: dir}
	item := models.ResolvedItem{FileName: "partial.mp4"}

	err := dest.Write(context.Background(), &failingReader{after: []byte("half")}, item)
	if err == nil {
		t.Fatal("Write() expected error")
	}

	if _, err := os.Stat(filepath.Join(dir, item.FileName)); !os.IsNotExist(err) {
		t.Errorf("partial file left behind: %v", err)
	}
}

func TestLocalDestinationRunsInPipeline(t *testing.T) {
	items, source := buildPlan(2)
	dir := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer

	pipeline := New(source, &LocalDestination{Dir: dir}, Options{Reporter: quietReporter(&out)})
	if err := pipeline.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	session, _ := NewSession(items, 0)
	if _, err := pipeline.Run(context.Background(), session); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, item := range items {
		info, err := os.Stat(filepath.Join(dir, item.FileName))
		if err != nil {
			t.Fatalf("Stat(%s) error = %v", item.FileName, err)
		}
		if info.Size() != item.SizeBytes {
			t.Errorf("%s size = %d, want %d", item.FileName, info.Size(), item.SizeBytes)
		}
	}
}
