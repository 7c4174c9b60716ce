// Package httpapi exposes the activity feed over HTTP.
//
// The single route is GET /api/activity. Validation failures map to
// 400, upstream failures pass their status and body text through, and
// anything unexpected becomes a 500.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	github "github.com/pulsefeed-labs/pulse-cli/internal/connectors/github"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driving"
	"github.com/pulsefeed-labs/pulse-cli/internal/logger"
)

const (
	// ReadTimeout bounds request reading on the served listener.
	ReadTimeout = 10 * time.Second

	// WriteTimeout bounds response writing on the served listener.
	WriteTimeout = 30 * time.Second
)

// TokenFunc supplies the fallback bearer credential for requests that
// carry no Authorization header. May be nil.
type TokenFunc func() string

// Handler serves the activity feed API.
type Handler struct {
	feed         driving.FeedService
	defaultToken TokenFunc
}

// NewHandler creates an API handler backed by feed. defaultToken may
// be nil when no fallback credential is configured.
func NewHandler(feed driving.FeedService, defaultToken TokenFunc) *Handler {
	return &Handler{feed: feed, defaultToken: defaultToken}
}

// Routes returns the HTTP handler with all routes registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/activity", h.handleActivity)
	return mux
}

// Server builds an http.Server for addr with sane timeouts.
func (h *Handler) Server(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h.Routes(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}
}

// activityResponse is the success body shape.
type activityResponse struct {
	Events []domain.NormalizedEvent `json:"events"`
	Rate   domain.RateInfo          `json:"rate"`
	Source domain.ItemSource        `json:"source"`
}

// errorResponse is the failure body shape.
type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	opts := h.fetchOptions(r)
	feed, err := h.feed.Fetch(r.Context(), opts)
	if err != nil {
		status, msg := classify(err)
		logger.Debug("httpapi: fetch for %q failed: %d %s", opts.Username, status, msg)
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	events := feed.Events
	if events == nil {
		events = []domain.NormalizedEvent{}
	}
	writeJSON(w, http.StatusOK, activityResponse{
		Events: events,
		Rate:   feed.Rate,
		Source: domain.SourceRemote,
	})
}

// fetchOptions reads query parameters and the Authorization header.
func (h *Handler) fetchOptions(r *http.Request) domain.FetchOptions {
	q := r.URL.Query()

	opts := domain.FetchOptions{
		Username:        q.Get("username"),
		IncludeReceived: q.Get("includeReceived") == "1",
		PerPage:         domain.DefaultPerPage,
	}
	if raw := q.Get("per_page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			opts.PerPage = n
		}
	}

	// A malformed Authorization header is not forwarded.
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && token != "" {
		opts.Token = token
	} else if h.defaultToken != nil {
		opts.Token = h.defaultToken()
	}

	return opts
}

// classify maps an error onto an HTTP status and message.
func classify(err error) (int, string) {
	if errors.Is(err, domain.ErrUsernameRequired) || errors.Is(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest, err.Error()
	}

	var upErr *github.UpstreamError
	if errors.As(err, &upErr) {
		return upErr.StatusCode, upErr.Body
	}
	if status := github.StatusOf(err); status != 0 {
		return status, err.Error()
	}

	return http.StatusInternalServerError, err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("httpapi: encode response: %v", err)
	}
}
