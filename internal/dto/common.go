package dto

// ApiResponse is the uniform envelope for every endpoint.
type ApiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *ApiError `json:"error,omitempty"`
}

type ApiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Success(data any) ApiResponse {
	return ApiResponse{Success: true, Data: data}
}

func Fail(code int, message string) ApiResponse {
	return ApiResponse{Success: false, Error: &ApiError{Code: code, Message: message}}
}
