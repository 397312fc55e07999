package transfer

import (
	"errors"
	"fmt"
	"io"

	"vimeomover/internal/models"
)

var ErrInvalidOffset = errors.New("invalid start offset")

// NewSession builds the unit handed to Pipeline.Run. startOffset skips that
// many already-transferred items and may equal len(items).
func NewSession(items []models.ResolvedItem, startOffset int) (*models.TransferSession, error) {
	if startOffset < 0 || startOffset > len(items) {
		return nil, fmt.Errorf("%w: %d (plan has %d items)", ErrInvalidOffset, startOffset, len(items))
	}

	var total int64
	for _, item := range items {
		total += item.SizeBytes
	}

	return &models.TransferSession{
		Items:          items,
		TotalSizeBytes: total,
		StartOffset:    startOffset,
	}, nil
}

// ItemError stops a run at the item that failed.
type ItemError struct {
	Index    int
	FileName string
	Err      error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %v", e.Index+1, e.FileName, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// ResumeOffset is the start offset that retries the failed item first.
func (e *ItemError) ResumeOffset() int {
	return e.Index
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
