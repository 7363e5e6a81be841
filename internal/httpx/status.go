package httpx

// Standard status codes of RFC 2616 section 6.1.1. Code 0 is reserved as the
// invalid sentinel.
const (
	StatusInvalid = 0

	StatusContinue           = 100
	StatusSwitchingProtocols = 101

	StatusOK                   = 200
	StatusCreated              = 201
	StatusAccepted             = 202
	StatusNonAuthoritativeInfo = 203
	StatusNoContent            = 204
	StatusResetContent         = 205
	StatusPartialContent       = 206

	StatusMultipleChoices   = 300
	StatusMovedPermanently  = 301
	StatusFound             = 302
	StatusSeeOther          = 303
	StatusNotModified       = 304
	StatusUseProxy          = 305
	StatusTemporaryRedirect = 307

	StatusBadRequest                   = 400
	StatusUnauthorized                 = 401
	StatusPaymentRequired              = 402
	StatusForbidden                    = 403
	StatusNotFound                     = 404
	StatusMethodNotAllowed             = 405
	StatusNotAcceptable                = 406
	StatusProxyAuthRequired            = 407
	StatusRequestTimeout               = 408
	StatusConflict                     = 409
	StatusGone                         = 410
	StatusLengthRequired               = 411
	StatusPreconditionFailed           = 412
	StatusRequestEntityTooLarge        = 413
	StatusRequestURITooLarge           = 414
	StatusUnsupportedMediaType         = 415
	StatusRangeNotSatisfiable          = 416
	StatusExpectationFailed            = 417

	StatusInternalServerError     = 500
	StatusNotImplemented          = 501
	StatusBadGateway              = 502
	StatusServiceUnavailable      = 503
	StatusGatewayTimeout          = 504
	StatusHTTPVersionNotSupported = 505
)

const defaultReasonPhrase = "Unknown"

// StatusCode is an HTTP response status. The zero value is invalid.
type StatusCode struct {
	code   int
	reason string
}

// NewStatusCode builds a status from a numeric code and an optional reason
// phrase. The phrase is only consulted when the code is not a standard one.
func NewStatusCode(code int, reason string) StatusCode {
	if reason == "" {
		reason = defaultReasonPhrase
	}
	return StatusCode{code: code, reason: reason}
}

// Code returns the numeric status code.
func (s StatusCode) Code() int { return s.code }

// Valid reports whether the code is non-zero.
func (s StatusCode) Valid() bool { return s.code != StatusInvalid }

// Informational reports a 1xx status.
func (s StatusCode) Informational() bool {
	return s.code >= StatusContinue && s.code <= StatusSwitchingProtocols
}

// Success reports a 2xx status.
func (s StatusCode) Success() bool {
	return s.code >= StatusOK && s.code <= StatusPartialContent
}

// Redirection reports a 3xx status.
func (s StatusCode) Redirection() bool {
	return s.code >= StatusMultipleChoices && s.code <= StatusTemporaryRedirect
}

// ClientError reports a 4xx status.
func (s StatusCode) ClientError() bool {
	return s.code >= StatusBadRequest && s.code <= StatusExpectationFailed
}

// ServerError reports a 5xx status.
func (s StatusCode) ServerError() bool {
	return s.code >= StatusInternalServerError && s.code <= StatusHTTPVersionNotSupported
}

// Standard reports whether the code is one of the ranges defined by the
// protocol. Code 0 is never standard.
func (s StatusCode) Standard() bool {
	return s.Informational() || s.Success() || s.Redirection() || s.ClientError() || s.ServerError()
}

// Reason returns the reason phrase: the protocol-defined phrase for standard
// codes, otherwise the phrase supplied at construction.
func (s StatusCode) Reason() string {
	switch s.code {
	case StatusInvalid:
		return "Invalid Status Code"
	case StatusContinue:
		return "Continue"
	case StatusSwitchingProtocols:
		return "Switching Protocols"
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Created"
	case StatusAccepted:
		return "Accepted"
	case StatusNonAuthoritativeInfo:
		return "Non-Authoritative Information"
	case StatusNoContent:
		return "No Content"
	case StatusResetContent:
		return "Reset Content"
	case StatusPartialContent:
		return "Partial Content"
	case StatusMultipleChoices:
		return "Multiple Choices"
	case StatusMovedPermanently:
		return "Moved Permanently"
	case StatusFound:
		return "Found"
	case StatusSeeOther:
		return "See Other"
	case StatusNotModified:
		return "Not Modified"
	case StatusUseProxy:
		return "Use Proxy"
	case StatusTemporaryRedirect:
		return "Temporary Redirect"
	case StatusBadRequest:
		return "Bad Request"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusPaymentRequired:
		return "Payment Required"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "Not Found"
	case StatusMethodNotAllowed:
		return "Method Not Allowed"
	case StatusNotAcceptable:
		return "Not Acceptable"
	case StatusProxyAuthRequired:
		return "Proxy Authentication Required"
	case StatusRequestTimeout:
		return "Request Timeout"
	case StatusConflict:
		return "Conflict"
	case StatusGone:
		return "Gone"
	case StatusLengthRequired:
		return "Length Required"
	case StatusPreconditionFailed:
		return "Precondition Failed"
	case StatusRequestEntityTooLarge:
		return "Request Entity Too Large"
	case StatusRequestURITooLarge:
		return "Request URI Too Large"
	case StatusUnsupportedMediaType:
		return "Unsupported Media Type"
	case StatusRangeNotSatisfiable:
		return "Requested Range Not Satisfiable"
	case StatusExpectationFailed:
		return "Expectation Failed"
	case StatusInternalServerError:
		return "Internal Server Error"
	case StatusNotImplemented:
		return "Not Implemented"
	case StatusBadGateway:
		return "Bad Gateway"
	case StatusServiceUnavailable:
		return "Service Unavailable"
	case StatusGatewayTimeout:
		return "Gateway Timeout"
	case StatusHTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	default:
		return s.reason
	}
}
