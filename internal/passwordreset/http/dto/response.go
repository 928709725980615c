package dto

// RequestResetResponse is the body returned for every reset request.
//
// The body is identical whether or not an account matched the email, so the
// endpoint cannot be used to enumerate registered addresses.
type RequestResetResponse struct {
	Message string `json:"message"`
}

// NewRequestResetResponse creates the generic acknowledgement body.
func NewRequestResetResponse() RequestResetResponse {
	return RequestResetResponse{
		Message: "if an account exists for this email, a password reset has been issued",
	}
}
