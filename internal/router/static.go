package router

import (
	"net/http"
	"strings"
)

// StaticHandler serves files from a web-root directory
type StaticHandler struct {
	files http.Handler
}

// NewStaticHandler creates a static handler rooted at webRoot
func NewStaticHandler(webRoot string) *StaticHandler {
	return &StaticHandler{
		files: http.FileServer(http.Dir(webRoot)),
	}
}

// ServeHTTP rejects any path with a ".." segment and hands the rest to
// http.FileServer, which maps missing files to 404 and unreadable ones
// to 403.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if containsDotDot(r.URL.Path) {
		http.Error(w, "403 Forbidden", http.StatusForbidden)
		return
	}
	h.files.ServeHTTP(w, r)
}

func containsDotDot(p string) bool {
	if !strings.Contains(p, "..") {
		return false
	}
	for _, seg := range strings.FieldsFunc(p, isSlash) {
		if seg == ".." {
			return true
		}
	}
	return false
}

func isSlash(r rune) bool {
	return r == '/' || r == '\\'
}
