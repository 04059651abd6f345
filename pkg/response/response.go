package response

// Envelope is the JSON shape used by middleware-level responses.
type Envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(code, message string, data any) Envelope {
	return Envelope{Code: code, Message: message, Data: data}
}

func Error(code, message string, data any) Envelope {
	return Envelope{Code: code, Message: message, Data: data}
}
