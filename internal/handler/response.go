package handler

// DataResponse is the success envelope of the catalog and customer routes:
//
//	{ "success": true, "data": ... }
//
// Message is only set by create operations.
type DataResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// MessageResponse is a success envelope without data.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FailureResponse is the envelope of handled errors.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func success[T any](data T) DataResponse[T] {
	return DataResponse[T]{Success: true, Data: data}
}
