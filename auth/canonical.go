package auth

import "strings"

// requestProtocol is the fixed protocol component of every canonical
// string. The signature does not vary with the HTTP version actually
// spoken on the wire.
const requestProtocol = "HTTP/1.1"

// Request carries the four request attributes that participate in
// signing.
type Request struct {
	// Method is the HTTP verb, uppercase.
	Method string
	// Path is the request path. It may include a query string, which
	// is excluded from the canonical form.
	Path string
	// ContentType is the Content-Type header value, or "" when the
	// request carries no body.
	ContentType string
	// Date is the Date header value exactly as sent on the wire.
	Date string
}

// Canonicalize renders the string both sides sign:
//
//	METHOD \n path \n HTTP/1.1 \n content-type \n date
//
// The result always contains exactly four newlines; absent components
// contribute empty lines. Anything from the first '?' in the path
// onward is excluded, so the signature is invariant under query
// parameter changes.
func Canonicalize(r Request) string {
	path := r.Path
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return strings.Join([]string{r.Method, path, requestProtocol, r.ContentType, r.Date}, "\n")
}
