package dto

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(data interface{}) Response {
	return Response{Status: "success", Data: data}
}

func OKMessage(message string, data interface{}) Response {
	return Response{Status: "success", Message: message, Data: data}
}

func Error(message string) Response {
	return Response{Status: "error", Message: message}
}
