package droplr

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Drop types returned in Drop.Type.
const (
	DropTypeLink  = "LINK"
	DropTypeNote  = "NOTE"
	DropTypeImage = "IMAGE"
	DropTypeAudio = "AUDIO"
	DropTypeVideo = "VIDEO"
	DropTypeFile  = "FILE"
)

// HeaderFilename carries the URL-escaped filename of a file upload.
const HeaderFilename = "x-droplr-filename"

// Drop is a single shared item: a shortened link, a note, or an
// uploaded file. Timestamps are Unix epoch milliseconds.
type Drop struct {
	Code       string `json:"code"`
	CreatedAt  int64  `json:"createdAt,omitempty"`
	Type       string `json:"type"`
	Variant    string `json:"variant,omitempty"`
	Title      string `json:"title,omitempty"`
	Size       int64  `json:"size,omitempty"`
	Privacy    string `json:"privacy,omitempty"`
	ShortLink  string `json:"shortlink"`
	Views      int64  `json:"views,omitempty"`
	LastAccess int64  `json:"lastAccess,omitempty"`
	Content    string `json:"content,omitempty"`
}

// ListDropsOptions pages and orders ListDrops. Zero values fall back
// to the server defaults.
type ListDropsOptions struct {
	Offset int
	Amount int
	// SortBy is one of CREATION, CODE, TITLE, SIZE, ACTIVITY, VIEWS.
	SortBy string
	// Order is ASC or DESC.
	Order string
}

func (o ListDropsOptions) query() string {
	q := url.Values{}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.Amount > 0 {
		q.Set("amount", strconv.Itoa(o.Amount))
	}
	if o.SortBy != "" {
		q.Set("sortBy", o.SortBy)
	}
	if o.Order != "" {
		q.Set("order", o.Order)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListDrops fetches a page of the bound account's drops.
func (c *Client) ListDrops(ctx context.Context, opts ListDropsOptions, ropts ...RequestOption) ([]Drop, error) {
	var drops []Drop
	if err := c.do(ctx, http.MethodGet, "/drops"+opts.query(), payload{}, &drops, ropts...); err != nil {
		return nil, err
	}
	return drops, nil
}

// ReadDrop fetches one drop by its short code.
func (c *Client) ReadDrop(ctx context.Context, code string, opts ...RequestOption) (*Drop, error) {
	var drop Drop
	if err := c.do(ctx, http.MethodGet, "/drops/"+url.PathEscape(code), payload{}, &drop, opts...); err != nil {
		return nil, err
	}
	return &drop, nil
}

// DeleteDrop removes one drop by its short code.
func (c *Client) DeleteDrop(ctx context.Context, code string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, "/drops/"+url.PathEscape(code), payload{}, nil, opts...)
}

// CreateNote shares a plain-text note.
func (c *Client) CreateNote(ctx context.Context, contents string, opts ...RequestOption) (*Drop, error) {
	if contents == "" {
		return nil, ErrEmptyContent
	}
	var drop Drop
	if err := c.do(ctx, http.MethodPost, "/notes", textPayload(contents), &drop, opts...); err != nil {
		return nil, err
	}
	return &drop, nil
}

// ShortenLink creates a short link for link.
func (c *Client) ShortenLink(ctx context.Context, link string, opts ...RequestOption) (*Drop, error) {
	if link == "" {
		return nil, ErrEmptyContent
	}
	var drop Drop
	if err := c.do(ctx, http.MethodPost, "/links", textPayload(link), &drop, opts...); err != nil {
		return nil, err
	}
	return &drop, nil
}

// UploadFile streams a file drop from r. size must be the exact byte
// length of the content; it becomes the request's Content-Length so
// the body is never buffered. An empty contentType defaults to
// application/octet-stream.
func (c *Client) UploadFile(ctx context.Context, filename, contentType string, r io.Reader, size int64, opts ...RequestOption) (*Drop, error) {
	if filename == "" {
		return nil, ErrMissingFilename
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	pl := payload{
		body:        r,
		length:      size,
		contentType: contentType,
		header:      http.Header{},
	}
	pl.header.Set(HeaderFilename, encodeFilename(filename))

	var drop Drop
	if err := c.do(ctx, http.MethodPost, "/files", pl, &drop, opts...); err != nil {
		return nil, err
	}
	return &drop, nil
}

// encodeFilename makes a filename safe for an ASCII header value: NFC
// normalization first, so composed and decomposed spellings of the
// same name produce identical bytes, then URL escaping.
func encodeFilename(name string) string {
	return url.PathEscape(norm.NFC.String(name))
}
