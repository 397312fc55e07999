package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vimeomover/internal/models"
	"vimeomover/pkg/utils"
)

// LocalDestination writes each item as a file under Dir.
type LocalDestination struct {
	Dir string
}

func (d *LocalDestination) Name() string {
	return d.Dir
}

func (d *LocalDestination) Setup(_ context.Context) error {
	return utils.EnsureDir(d.Dir)
}

func (d *LocalDestination) Write(_ context.Context, r io.Reader, item models.ResolvedItem) error {
	path := filepath.Join(d.Dir, filepath.Base(item.FileName))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		utils.CleanupTempFile(path)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		utils.CleanupTempFile(path)
		return fmt.Errorf("failed to close file %s: %w", path, err)
	}
	return nil
}
