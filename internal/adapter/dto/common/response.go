package common

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalItems int64 `json:"total_items"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Data       interface{}         `json:"data"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// NewListResponse wraps items with their pagination metadata
func NewListResponse(items interface{}, limit, offset int, total int64) ListResponse {
	return ListResponse{
		Data:       items,
		Pagination: &PaginationResponse{Limit: limit, Offset: offset, TotalItems: total},
	}
}
