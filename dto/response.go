package dto

// Every response carries a success flag; failures additionally carry a
// human-readable message and, for server errors, the underlying detail.

type PostListResponse struct {
	Success    bool          `json:"success"`
	Data       []PostDTO     `json:"data"`
	Pagination PaginationDTO `json:"pagination"`
}

type PostResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Data    PostDTO `json:"data"`
}

type LikeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Likes   int64  `json:"likes"`
}

type HealthResponse struct {
	Success bool   `json:"success"`
	Backend string `json:"backend"`
	Total   int64  `json:"total"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
