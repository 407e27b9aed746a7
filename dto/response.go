package dto

// Response is the uniform envelope of every non-paginated endpoint.
type Response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse carries one window plus the total count computed with
// the same filters, so clients can derive the page count.
type PaginatedResponse struct {
	Message string `json:"message,omitempty"`
	Content any    `json:"content"`
	Page    int    `json:"page"`
	Total   int    `json:"total"`
}

type BatchDeleteBody struct {
	Ids []int64 `json:"ids" binding:"required,min=1"`
}
