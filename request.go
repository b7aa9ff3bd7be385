package smartcar

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// httpClient is shared by every request the SDK sends. No timeout is set
// here: deadlines and cancellation come from the caller's context.
var httpClient = &http.Client{}

// request assembles one authenticated round trip. Exactly one of form and
// body may be set; form wins and is sent urlencoded, body is sent as JSON.
type request struct {
	method string
	url    string
	header http.Header
	query  url.Values
	form   url.Values
	body   any
	logger *zap.Logger
}

func newRequest(method, rawURL string) *request {
	return &request{
		method: method,
		url:    rawURL,
		header: make(http.Header),
		logger: zap.NewNop(),
	}
}

func (r *request) withHeader(key, value string) *request {
	r.header.Set(key, value)
	return r
}

func (r *request) withQuery(q url.Values) *request {
	r.query = q
	return r
}

func (r *request) withForm(form url.Values) *request {
	r.form = form
	return r
}

func (r *request) withJSON(body any) *request {
	r.body = body
	return r
}

func (r *request) withLogger(logger *zap.Logger) *request {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// response is the raw outcome of a round trip, before shape resolution.
type response struct {
	status int
	body   []byte
	meta   Meta
}

// send performs the round trip. Anything that keeps a response from
// arriving in full, including context cancellation, comes back as a
// *TransportError.
func (r *request) send(ctx context.Context) (*response, error) {
	var reader io.Reader
	contentType := ""
	switch {
	case r.form != nil:
		reader = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.body != nil:
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, &ParseError{Err: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	target := r.url
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, reader)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	for key, values := range r.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	meta := metaFromHeaders(res.Header)
	r.logger.Debug("smartcar request",
		zap.String("method", r.method),
		zap.String("url", r.url),
		zap.Int("status", res.StatusCode),
		zap.String("request_id", meta.RequestID),
	)

	return &response{status: res.StatusCode, body: body, meta: meta}, nil
}

func bearerHeader(accessToken string) string {
	return "Bearer " + accessToken
}

func basicAuthHeader(clientID, clientSecret string) string {
	credentials := base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
	return "Basic " + credentials
}
