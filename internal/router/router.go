// Package router maps request paths onto the dev server's pages, the
// simulated login, the mock API and static files under the web-root.
package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kyco/deadlockdev/internal/logger"
	"github.com/kyco/deadlockdev/internal/mockapi"
	"github.com/kyco/deadlockdev/internal/pages"
)

// RenderFunc produces the HTML for a generated page
type RenderFunc func(pages.Page) ([]byte, error)

// Options configures the route table
type Options struct {
	// WebRoot is the directory static files are served from
	WebRoot string
	// AccessLog receives one line per request; nil disables it
	AccessLog *logger.AccessLogger
	// Render defaults to pages.Render
	Render RenderFunc
}

type handler struct {
	render RenderFunc
	static http.Handler
}

// New builds the route table. Routes are evaluated in order and the first
// match wins:
//
//	/ and /home    home page
//	/profile       profile page
//	/auth/login    302 to /profile
//	/resources/*   static file
//	/api/*         mock JSON
//	anything else  static file
func New(opts Options) http.Handler {
	h := &handler{
		render: opts.Render,
		static: NewStaticHandler(opts.WebRoot),
	}
	if h.render == nil {
		h.render = pages.Render
	}

	r := mux.NewRouter()
	// Paths reach the handlers uncleaned so the static guard sees any ".."
	r.SkipClean(true)
	r.MethodNotAllowedHandler = http.HandlerFunc(unsupportedMethod)

	methods := []string{http.MethodGet, http.MethodHead}
	r.Path("/").Methods(methods...).HandlerFunc(h.page(pages.Home))
	r.Path("/home").Methods(methods...).HandlerFunc(h.page(pages.Home))
	r.Path("/profile").Methods(methods...).HandlerFunc(h.page(pages.Profile))
	r.Path("/auth/login").Methods(methods...).HandlerFunc(login)
	r.PathPrefix("/resources/").Methods(methods...).Handler(h.static)
	r.PathPrefix("/api/").Methods(methods...).HandlerFunc(api)
	r.PathPrefix("/").Methods(methods...).Handler(h.static)

	var root http.Handler = recoverPanics(r)
	if opts.AccessLog != nil {
		root = accessLog(opts.AccessLog, root)
	}
	return root
}

// page serves a generated page. An unknown page gets the not-found
// fragment with a 404; any other render failure is a 500.
func (h *handler) page(p pages.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := h.render(p)
		if err != nil {
			if errors.Is(err, pages.ErrUnknownPage) {
				writeHTML(w, http.StatusNotFound, body)
				return
			}
			slog.Error("Failed to render page", "page", p, "error", err)
			serverError(w, err)
			return
		}
		writeHTML(w, http.StatusOK, body)
	}
}

// login simulates the Steam sign-in by sending the browser straight to
// the profile page.
func login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Location", "/profile")
	w.WriteHeader(http.StatusFound)
}

func api(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mockapi.Select(r.URL.Path))
}

func unsupportedMethod(w http.ResponseWriter, r *http.Request) {
	http.Error(w, fmt.Sprintf("Unsupported method ('%s')", r.Method), http.StatusNotImplemented)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

func serverError(w http.ResponseWriter, err error) {
	http.Error(w, "Server Error: "+err.Error(), http.StatusInternalServerError)
}
