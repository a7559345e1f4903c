package serverutils

// BaseResponse is the envelope every endpoint returns.
// Status is "success" or "error".
type BaseResponse[T any] struct {
	Status  string       `json:"status"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
	Data    T            `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func SuccessResponse[T any](data T) BaseResponse[T] {
	return BaseResponse[T]{
		Status: "success",
		Data:   data,
	}
}

func ErrorResponse(code, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Status:  "error",
		Code:    code,
		Message: message,
	}
}

func ValidationErrorResponse(errors []FieldError) BaseResponse[any] {
	return BaseResponse[any]{
		Status: "error",
		Code:   "VALIDATION_ERROR",
		Errors: errors,
	}
}
