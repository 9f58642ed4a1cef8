package droplr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/droplr/droplr-go/auth"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)

// RequestOption customizes a single API call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	keys auth.KeyMaterial
}

// WithKeyMaterial signs one call with a different application key
// pair, leaving the client's own keys and session untouched.
func WithKeyMaterial(keys auth.KeyMaterial) RequestOption {
	return func(o *requestOptions) {
		o.keys = keys
	}
}

// payload describes a request body: a reader, its exact byte length,
// its content type, and any extra protocol headers.
type payload struct {
	body        io.Reader
	length      int64
	contentType string
	header      http.Header
}

func jsonPayload(v any) (payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return payload{}, fmt.Errorf("encoding request body: %w", err)
	}
	return payload{
		body:        bytes.NewReader(b),
		length:      int64(len(b)),
		contentType: contentTypeJSON,
	}, nil
}

func textPayload(s string) payload {
	return payload{
		body:        strings.NewReader(s),
		length:      int64(len(s)),
		contentType: contentTypeText,
	}
}

// do signs and sends one request, decoding the JSON response into out
// when out is non-nil. The canonical string is derived from the
// request's own method, path, content type, and Date header, so the
// server can reconstruct it verbatim.
func (c *Client) do(ctx context.Context, method, path string, pl payload, out any, opts ...RequestOption) error {
	o := requestOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	keys := c.keys
	if !o.keys.IsZero() {
		keys = o.keys
	}

	sess := c.snapshot()
	date := strconv.FormatInt(c.now().UnixMilli(), 10)

	canonical := auth.Canonicalize(auth.Request{
		Method:      method,
		Path:        path,
		ContentType: pl.contentType,
		Date:        date,
	})
	authorization, err := auth.Sign(canonical, sess.scheme, keys, sess.creds)
	if err != nil {
		return fmt.Errorf("signing request: %w", err)
	}

	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parsing request path: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(rel).String(), pl.body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Date", date)
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", c.accept)
	req.Header.Set("User-Agent", c.userAgent)
	if pl.contentType != "" {
		req.Header.Set("Content-Type", pl.contentType)
	}
	if pl.body != nil {
		req.ContentLength = pl.length
	}
	for k, vs := range pl.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.LogAttrs(ctx, slog.LevelDebug, "api call",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("scheme", sess.scheme.String()),
		slog.Int("status", resp.StatusCode),
	)

	if err := responseError(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}
	return nil
}

// responseError maps a response to an *APIError, or nil for success.
// A droplr-errorcode header marks failure regardless of HTTP status.
func responseError(resp *http.Response) error {
	code := resp.Header.Get(HeaderErrorCode)
	if code == "" && resp.StatusCode < http.StatusBadRequest {
		return nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       code,
		Details:    resp.Header.Get(HeaderErrorDetails),
	}
}
