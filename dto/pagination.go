package dto

// PaginationDTO summarizes a windowed listing.
// Total counts matching records before windowing; Pages is ceil(Total/Limit).
type PaginationDTO struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}
