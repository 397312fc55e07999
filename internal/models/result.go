package models

type TransferStatus int

const (
	StatusPending TransferStatus = iota
	StatusStreaming
	StatusCommitted
	StatusFailed
)

func (s TransferStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusStreaming:
		return "Streaming"
	case StatusCommitted:
		return "Committed"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s TransferStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type TransferItem struct {
	Index        int            `json:"index"`
	FileName     string         `json:"file_name"`
	SourcePath   string         `json:"source_path"`
	Size         int64          `json:"size"`
	BytesWritten int64          `json:"bytes_written"`
	Status       TransferStatus `json:"status"`
	Error        string         `json:"error,omitempty"`
}

type TransferResult struct {
	RunID            string         `json:"run_id"`
	Destination      string         `json:"destination"`
	Items            []TransferItem `json:"items"`
	TotalFiles       int            `json:"total_files"`
	CommittedFiles   int            `json:"committed_files"`
	StartOffset      int            `json:"start_offset"`
	ResumeOffset     int            `json:"resume_offset"`
	TotalSizeBytes   int64          `json:"total_size_bytes"`
	TotalSizeHuman   string         `json:"total_size_human"`
	OperationTime    string         `json:"operation_time"`
	TransferDuration string         `json:"transfer_duration"`
}
