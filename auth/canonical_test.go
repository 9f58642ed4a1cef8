package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeJoinsComponents(t *testing.T) {
	canonical := Canonicalize(Request{
		Method:      "POST",
		Path:        "/notes",
		ContentType: "text/plain",
		Date:        "1327351200000",
	})
	assert.Equal(t, "POST\n/notes\nHTTP/1.1\ntext/plain\n1327351200000", canonical)
}

func TestCanonicalizeStripsQuery(t *testing.T) {
	canonical := Canonicalize(Request{
		Method: "GET",
		Path:   "/drops?offset=0&amount=10",
		Date:   "1327351200000",
	})
	assert.Equal(t, "GET\n/drops\nHTTP/1.1\n\n1327351200000", canonical)
}

func TestCanonicalizeStripsFromFirstQuestionMark(t *testing.T) {
	canonical := Canonicalize(Request{Method: "GET", Path: "/x?a=1?b=2", Date: "0"})
	assert.Equal(t, "GET\n/x\nHTTP/1.1\n\n0", canonical)
}

func TestCanonicalizeAlwaysHasFourNewlines(t *testing.T) {
	requests := []Request{
		{},
		{Method: "GET", Path: "/account"},
		{Method: "GET", Path: "/drops?offset=5"},
		{Method: "PUT", Path: "/account", ContentType: "application/json", Date: "42"},
	}
	for _, r := range requests {
		assert.Equal(t, 4, strings.Count(Canonicalize(r), "\n"), "request %+v", r)
	}
}
