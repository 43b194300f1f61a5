package common

// SessionHeaderName is the gRPC metadata key used to carry the session id
// on authenticated requests.
const SessionHeaderName = "sid"

// Status values returned by successful broker operations.
const (
	StatusRegistrationPending = "registration_pending"
	StatusRegistrationSuccess = "registration_success"
	StatusLoginOTPSent        = "login_otp_sent"
	StatusLoginSuccess        = "login_success"
	StatusGrantSuccess        = "grant_success"
	StatusUploadSuccess       = "upload_success"
	StatusOK                  = "ok"
)
