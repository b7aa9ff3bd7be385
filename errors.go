package smartcar

import "fmt"

// TransportError wraps a network-level failure: connection errors, context
// cancellation, a body cut short. The request may never have reached the
// provider; retrying is the caller's call.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("smartcar: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError is the token endpoint rejecting a code or refresh-token
// exchange. A failed code exchange means restarting the consent flow; a
// failed refresh with code "invalid_grant" means the refresh token is spent.
type AuthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	StatusCode  int    `json:"-"`
}

func (e *AuthError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("smartcar: auth error: %s", e.Code)
	}
	return fmt.Sprintf("smartcar: auth error: %s: %s", e.Code, e.Description)
}

// APIError is the provider's structured error envelope for a resource call.
// Whether it is worth retrying depends on the code: rate limits are, missing
// permissions are not.
type APIError struct {
	Type        string         `json:"type"`
	Code        string         `json:"code"`
	Description string         `json:"description"`
	DocURL      string         `json:"docURL"`
	StatusCode  int            `json:"statusCode"`
	RequestID   string         `json:"requestId"`
	Resolution  map[string]any `json:"resolution"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("smartcar: api error: %s: %s", e.ErrorCode(), e.Description)
}

// ErrorCode returns the most specific code the envelope carried. Older
// error shapes only fill the type field.
func (e *APIError) ErrorCode() string {
	if e.Code != "" {
		return e.Code
	}
	return e.Type
}

// ParseError is a response that did not match the expected shape. It points
// at a contract mismatch between the SDK and the provider, not at anything
// the user can fix or retry.
type ParseError struct {
	Err  error
	Body []byte
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("smartcar: parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// HTTPError is the fallback for non-2xx responses whose body is not the
// provider's error envelope, e.g. a proxy's HTML error page.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("smartcar: http error: status=%d body=%s", e.StatusCode, e.Body)
}
