package view

// Response is the envelope every endpoint returns.
type Response[T any] struct {
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func CreateResponse[T any](data T, err error, code, message string) Response[T] {
	response := Response[T]{
		Data:    data,
		Code:    code,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	return response
}
