package smartcar

import (
	"encoding/json"
	"net/http"
	"time"
)

// decode resolves the raw response into v. 2xx bodies must match the
// expected shape; anything else resolves to the provider's error envelope
// or, failing that, a bare *HTTPError.
func (r *response) decode(v any) error {
	if r.status < 200 || r.status > 299 {
		return r.apiError()
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return &ParseError{Err: err, Body: r.body}
	}
	return nil
}

// apiError parses the standard error envelope of a resource call.
func (r *response) apiError() error {
	var apiErr APIError
	if err := json.Unmarshal(r.body, &apiErr); err == nil && apiErr.ErrorCode() != "" {
		apiErr.StatusCode = r.status
		return &apiErr
	}
	return &HTTPError{StatusCode: r.status, Body: string(r.body)}
}

// authError parses the OAuth error envelope of the token endpoint.
func (r *response) authError() error {
	var authErr AuthError
	if err := json.Unmarshal(r.body, &authErr); err == nil && authErr.Code != "" {
		authErr.StatusCode = r.status
		return &authErr
	}
	return &HTTPError{StatusCode: r.status, Body: string(r.body)}
}

func metaFromHeaders(h http.Header) Meta {
	meta := Meta{
		RequestID:  h.Get("SC-Request-Id"),
		UnitSystem: h.Get("SC-Unit-System"),
	}
	if raw := h.Get("SC-Data-Age"); raw != "" {
		// e.g. "2022-09-05T19:57:31.037Z"
		if age, err := time.Parse(time.RFC3339, raw); err == nil {
			meta.DataAge = age
		}
	}
	return meta
}
