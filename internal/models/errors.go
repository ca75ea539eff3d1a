package models

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ProxyErrorResponse is the flat error body of the two AI proxy endpoints.
type ProxyErrorResponse struct {
	Error string `json:"error"`
}
