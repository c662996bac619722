package responses

// Response is the envelope every /api/v1 endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// LoginResponse carries the signed token next to the envelope fields.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// StatusResponse is returned by the liveness route.
type StatusResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Fail builds a failed envelope around err, using fallback when err carries
// no message.
func Fail(err error, fallback string) Response {
	message := fallback
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return Response{Success: false, Message: message}
}
