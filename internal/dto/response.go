package dto

// Response is the uniform envelope every operation returns: success flag,
// payload (or null) and a human readable error message (or null).
type Response struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// ListResponse is the envelope for paginated listings; it adds the total
// number of matches alongside the returned page.
type ListResponse struct {
	Success    bool    `json:"success"`
	Data       any     `json:"data"`
	TotalCount int64   `json:"totalCount"`
	Error      *string `json:"error"`
}

// OK wraps a successful payload in the uniform envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail wraps a failure message in the uniform envelope.
func Fail(message string) Response {
	return Response{Success: false, Error: &message}
}

// ListOK wraps one page of results plus the total match count.
func ListOK(data any, totalCount int64) ListResponse {
	return ListResponse{Success: true, Data: data, TotalCount: totalCount}
}

// ListFail wraps a failure message in the list envelope.
func ListFail(message string) ListResponse {
	return ListResponse{Success: false, Data: []any{}, Error: &message}
}
