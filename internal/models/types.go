package models

type Paging struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	First    *string `json:"first"`
	Last     *string `json:"last"`
}

// Page is one response of a paginated listing endpoint.
type Page[T any] struct {
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Paging  Paging `json:"paging"`
	Data    []T    `json:"data"`
}

// NextCursor returns the next page reference, or "" on the last page.
func (p *Page[T]) NextCursor() string {
	if p.Paging.Next == nil {
		return ""
	}
	return *p.Paging.Next
}

type Folder struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type FolderList struct {
	Folders []Folder `json:"folders"`
	Total   int      `json:"total"`
}

type Video struct {
	Name        string    `json:"name"`
	CreatedTime string    `json:"created_time"`
	Variants    []Variant `json:"download"`
}

type Variant struct {
	Quality string `json:"rendition"`
	Link    string `json:"link"`
	Size    *int64 `json:"size"`
}

// SizeBytes returns the variant size, 0 when the API did not measure it.
func (v Variant) SizeBytes() int64 {
	if v.Size == nil || *v.Size < 0 {
		return 0
	}
	return *v.Size
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`

	// ResumeOffset is set when a transfer halted; pass it to --start-offset.
	ResumeOffset *int `json:"resume_offset,omitempty"`
}
