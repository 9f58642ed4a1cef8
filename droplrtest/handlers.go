package droplrtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/droplr/droplr-go/droplr"
	"github.com/droplr/droplr-go/internal/util"
)

const (
	defaultListAmount = 10
	maxListAmount     = 100
	maxBodyBytes      = 32 << 20
)

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "CreateAccount.InvalidDetails", "email and password digest are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[body.Email]; exists {
		writeError(w, http.StatusForbidden, "CreateAccount.EmailTaken", "an account already exists for "+body.Email)
		return
	}
	// The password arrives pre-digested; it is stored as-is, exactly
	// what signature verification needs.
	acct := s.register(body.Email, body.Password)
	writeJSON(w, http.StatusCreated, s.accountJSON(acct))
}

func (s *Server) readAccount(w http.ResponseWriter, r *http.Request) {
	id := requestIdentity(r)
	if id.anonymous {
		writeError(w, http.StatusForbidden, "Request.ActionForbidden", "anonymous sessions have no account")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.accountJSON(s.accounts[id.email]))
}

func (s *Server) editAccount(w http.ResponseWriter, r *http.Request) {
	id := requestIdentity(r)
	if id.anonymous {
		writeError(w, http.StatusForbidden, "Request.ActionForbidden", "anonymous sessions have no account")
		return
	}
	var fields map[string]string
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "EditAccount.InvalidDetails", "malformed edit body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.accounts[id.email]
	if v, ok := fields["password"]; ok && v != "" {
		acct.digest = v
	}
	if v, ok := fields["dropPrivacy"]; ok {
		acct.dropPrivacy = v
	}
	if v, ok := fields["theme"]; ok {
		acct.theme = v
	}
	if v, ok := fields["rootRedirect"]; ok {
		acct.rootRedirect = v
	}
	if v, ok := fields["useDomain"]; ok {
		acct.useDomain = v
	}
	writeJSON(w, http.StatusOK, s.accountJSON(acct))
}

func (s *Server) accountJSON(acct *account) droplr.Account {
	var count, used int64
	for _, d := range s.drops {
		if d.owner == acct.email {
			count++
			used += d.d.Size
		}
	}
	return droplr.Account{
		ID:           acct.id,
		Email:        acct.email,
		CreatedAt:    acct.createdAt,
		DropCount:    count,
		UsedSpace:    used,
		TotalSpace:   1 << 30,
		DropPrivacy:  acct.dropPrivacy,
		Theme:        acct.theme,
		RootRedirect: acct.rootRedirect,
		UseDomain:    acct.useDomain,
	}
}

// createDrop stores a new drop for the request identity and responds
// with its JSON form.
func (s *Server) createDrop(w http.ResponseWriter, r *http.Request, dropType, title, content string, size int64) {
	id := requestIdentity(r)

	code, err := util.RandomChars(8)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "CreateDrop.Failed", "generating drop code")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d := &drop{
		owner: id.email,
		d: droplr.Drop{
			Code:      code,
			CreatedAt: s.now().UnixMilli(),
			Type:      dropType,
			Title:     title,
			Size:      size,
			Privacy:   s.accounts[id.email].dropPrivacy,
			ShortLink: "https://d.pr/" + code,
			Content:   content,
		},
	}
	s.drops[code] = d
	writeJSON(w, http.StatusCreated, d.d)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(body) == 0 {
		writeError(w, http.StatusBadRequest, "CreateDrop.NoContent", "note body is empty")
		return
	}
	contents := string(body)
	s.createDrop(w, r, droplr.DropTypeNote, firstLine(contents), contents, int64(len(body)))
}

func (s *Server) createLink(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(body) == 0 {
		writeError(w, http.StatusBadRequest, "CreateDrop.NoContent", "link body is empty")
		return
	}
	link := strings.TrimSpace(string(body))
	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		writeError(w, http.StatusBadRequest, "CreateDrop.InvalidURL", "link body is not an absolute URL")
		return
	}
	s.createDrop(w, r, droplr.DropTypeLink, link, link, int64(len(body)))
}

func (s *Server) createFile(w http.ResponseWriter, r *http.Request) {
	escaped := r.Header.Get(droplr.HeaderFilename)
	if escaped == "" {
		writeError(w, http.StatusBadRequest, "CreateDrop.NoFilename", "missing "+droplr.HeaderFilename+" header")
		return
	}
	filename, err := url.PathUnescape(escaped)
	if err != nil {
		writeError(w, http.StatusBadRequest, "CreateDrop.NoFilename", "malformed "+droplr.HeaderFilename+" header")
		return
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		writeError(w, http.StatusBadRequest, "CreateDrop.UnsupportedType", "file uploads require a Content-Type")
		return
	}
	size, err := io.Copy(io.Discard, io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "CreateDrop.Failed", "reading upload body")
		return
	}
	s.createDrop(w, r, dropTypeForContent(contentType), filename, "", size)
}

func dropTypeForContent(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return droplr.DropTypeImage
	case strings.HasPrefix(contentType, "audio/"):
		return droplr.DropTypeAudio
	case strings.HasPrefix(contentType, "video/"):
		return droplr.DropTypeVideo
	default:
		return droplr.DropTypeFile
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (s *Server) listDrops(w http.ResponseWriter, r *http.Request) {
	id := requestIdentity(r)
	if id.anonymous {
		writeError(w, http.StatusForbidden, "Request.ActionForbidden", "anonymous sessions have no drops")
		return
	}

	s.mu.Lock()
	owned := make([]droplr.Drop, 0)
	for _, d := range s.drops {
		if d.owner == id.email {
			owned = append(owned, d.d)
		}
	}
	s.mu.Unlock()

	sortDrops(owned, r.URL.Query().Get("sortBy"), r.URL.Query().Get("order"))

	offset, amount := parseListParams(r)
	start := offset
	if start > len(owned) {
		start = len(owned)
	}
	end := start + amount
	if end > len(owned) {
		end = len(owned)
	}
	writeJSON(w, http.StatusOK, owned[start:end])
}

// parseListParams reads "offset" and "amount" query parameters.
// Missing or invalid values fall back to offset 0 and the default
// page size; amount is capped.
func parseListParams(r *http.Request) (offset, amount int) {
	q := r.URL.Query()

	amount = defaultListAmount
	if v := q.Get("amount"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			amount = n
		}
	}
	if amount > maxListAmount {
		amount = maxListAmount
	}

	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return offset, amount
}

func sortDrops(drops []droplr.Drop, sortBy, order string) {
	less := func(a, b droplr.Drop) bool { return a.CreatedAt < b.CreatedAt }
	switch sortBy {
	case "CODE":
		less = func(a, b droplr.Drop) bool { return a.Code < b.Code }
	case "TITLE":
		less = func(a, b droplr.Drop) bool { return a.Title < b.Title }
	case "SIZE":
		less = func(a, b droplr.Drop) bool { return a.Size < b.Size }
	case "VIEWS":
		less = func(a, b droplr.Drop) bool { return a.Views < b.Views }
	case "ACTIVITY":
		less = func(a, b droplr.Drop) bool { return a.LastAccess < b.LastAccess }
	}
	sort.SliceStable(drops, func(i, j int) bool {
		if order == "DESC" {
			return less(drops[j], drops[i])
		}
		return less(drops[i], drops[j])
	})
}

func (s *Server) readDrop(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drops[code]
	if !ok {
		writeError(w, http.StatusNotFound, "ReadDrop.NoSuchDrop", "no drop with code "+code)
		return
	}
	d.d.Views++
	d.d.LastAccess = s.now().UnixMilli()
	writeJSON(w, http.StatusOK, d.d)
}

func (s *Server) deleteDrop(w http.ResponseWriter, r *http.Request) {
	id := requestIdentity(r)
	code := chi.URLParam(r, "code")

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drops[code]
	if !ok || d.owner != id.email {
		writeError(w, http.StatusNotFound, "DeleteDrop.NoSuchDrop", "no drop with code "+code)
		return
	}
	delete(s.drops, code)
	w.WriteHeader(http.StatusNoContent)
}
