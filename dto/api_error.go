package dto

type ErrorCode string

const (
	NotFound             ErrorCode = "not_found"
	NoItems              ErrorCode = "no_items"
	ValidationError      ErrorCode = "validation_error"
	MissingRequiredField ErrorCode = "missing_required_field"
	Conflict             ErrorCode = "conflict"
	TransactionFailed    ErrorCode = "transaction_failed"
)

type APIErrorResponse struct {
	Message   string            `json:"message"`
	ErrorCode ErrorCode         `json:"error_code"`
	Details   map[string]string `json:"details,omitempty"`
}
