package models

type TransferTarget struct {
	Quality            string `json:"quality"`
	AggregateSizeBytes int64  `json:"aggregate_size_bytes"`
	AggregateSizeHuman string `json:"aggregate_size_human"`
}

type ResolvedItem struct {
	SourceLocator string `json:"source_locator"`
	FileName      string `json:"file_name"`
	SizeBytes     int64  `json:"size_bytes"`
}

type TransferSession struct {
	Items          []ResolvedItem `json:"items"`
	TotalSizeBytes int64          `json:"total_size_bytes"`
	StartOffset    int            `json:"start_offset"`
}

// Pending returns the items still to be processed, in order.
func (s *TransferSession) Pending() []ResolvedItem {
	if s.StartOffset >= len(s.Items) {
		return nil
	}
	return s.Items[s.StartOffset:]
}

// PendingSizeBytes is the planned size of the items from StartOffset on.
func (s *TransferSession) PendingSizeBytes() int64 {
	var total int64
	for _, item := range s.Pending() {
		total += item.SizeBytes
	}
	return total
}

type PlanResult struct {
	FolderName     string           `json:"folder_name"`
	FolderURI      string           `json:"folder_uri"`
	Quality        string           `json:"quality"`
	Targets        []TransferTarget `json:"targets,omitempty"`
	Session        *TransferSession `json:"session,omitempty"`
	TotalFiles     int              `json:"total_files"`
	TotalSizeHuman string           `json:"total_size_human"`
	DryRun         bool             `json:"dry_run,omitempty"`
}
