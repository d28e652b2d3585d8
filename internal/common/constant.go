package common

const (
	// SessionCookieName is the cookie that carries the session token.
	SessionCookieName = "token"

	// TotalCountHeader carries the count-plan result on listing responses.
	TotalCountHeader = "x-total-count"

	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "x-request-id"
)
