package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"vimeomover/internal/models"
)

// resumable is implemented by errors that know where a halted run can pick up.
type resumable interface {
	ResumeOffset() int
}

func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func PrintJSON(data any) error {
	return FprintJSON(os.Stdout, data)
}

func FprintJSON(w io.Writer, data any) error {
	jsonOutput, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonOutput))
	return err
}

// PrintError writes err as an ErrorResponse on stdout.
func PrintError(err error, command string) {
	errorResp := NewErrorResponse(err, command, time.Now())
	if err := PrintJSON(errorResp); err != nil {
		slog.Error("Failed to print error in JSON format", "error", err)
		fmt.Println("Error: ", errorResp)
	}
}

func NewErrorResponse(err error, command string, now time.Time) models.ErrorResponse {
	errorResp := models.ErrorResponse{
		Error:     err.Error(),
		Timestamp: now.Format(time.RFC3339),
		Command:   command,
	}

	var r resumable
	if errors.As(err, &r) {
		offset := r.ResumeOffset()
		errorResp.ResumeOffset = &offset
	}
	return errorResp
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
