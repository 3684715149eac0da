package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ziplink/ziplink/pkg/core/domain"
	"github.com/ziplink/ziplink/pkg/ports"
)

type LinkHandler struct {
	service ports.LinkService
	baseURL string
}

func NewLinkHandler(service ports.LinkService, baseURL string) *LinkHandler {
	return &LinkHandler{service: service, baseURL: baseURL}
}

// ShortenRequest payload, field names match the companion front-end.
type ShortenRequest struct {
	LongURL        string `json:"longUrl"`
	CustomAlias    string `json:"customAlias,omitempty"`
	LinkPassword   string `json:"linkPassword,omitempty"`
	UserID         string `json:"userId,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

type ShortenResponse struct {
	ShortURL    string `json:"shortUrl"`
	IsProtected bool   `json:"isProtected"`
}

type VerifyPasswordRequest struct {
	ShortCode string `json:"shortCode"`
	Password  string `json:"password"`
}

// LinkSummary is the dashboard projection of a link record.
type LinkSummary struct {
	ID          string  `json:"id"`
	LongURL     string  `json:"long_url"`
	ShortCode   string  `json:"short_code"`
	ShortURL    string  `json:"short_url"`
	Clicks      int64   `json:"clicks"`
	CreatedAt   *string `json:"created_at"`
	ExpiresAt   *string `json:"expires_at"`
	IsProtected bool    `json:"is_protected"`
}

// Index is the liveness message on the service root.
func (h *LinkHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "ZipLink backend is running!"})
}

// Shorten creates a link.
func (h *LinkHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	var req ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	link, err := h.service.Shorten(r.Context(), req.LongURL, req.CustomAlias, req.LinkPassword, req.UserID, req.ExpirationDate)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ShortenResponse{
		ShortURL:    h.baseURL + "/" + link.ShortCode,
		IsProtected: link.IsProtected,
	})
}

// VerifyPassword checks the password for a protected link and reveals
// the destination on success.
func (h *LinkHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req VerifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.ShortCode == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing short code or password")
		return
	}

	longURL, err := h.service.VerifyPassword(r.Context(), req.ShortCode, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrWrongPassword) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "invalid password"})
			return
		}
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "longUrl": longURL})
}

// Redirect resolves a short code into a 302, a password gateway page, or
// an expiry page.
func (h *LinkHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("short_code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "short code missing")
		return
	}

	resolution, err := h.service.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrExpired) {
			writeHTML(w, http.StatusGone, renderExpiredPage())
			return
		}
		h.respondError(w, err)
		return
	}

	switch resolution.State {
	case domain.StatePasswordRequired:
		writeHTML(w, http.StatusOK, renderPasswordGateway(resolution.ShortCode, h.baseURL))
	default:
		http.Redirect(w, r, resolution.LongURL, http.StatusFound)
	}
}

// ListUserLinks returns the dashboard view of a user's links.
func (h *LinkHandler) ListUserLinks(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	links, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("failed to fetch user links", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch links due to an internal server error")
		return
	}

	summaries := make([]LinkSummary, 0, len(links))
	for _, link := range links {
		summaries = append(summaries, h.summarize(link))
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": summaries})
}

// Delete removes a link. Deleting an absent code still succeeds.
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("short_code")

	if err := h.service.Delete(r.Context(), code); err != nil {
		slog.Error("failed to delete link", "short_code", code, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete link due to internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "link " + code + " deleted successfully"})
}

func (h *LinkHandler) summarize(link domain.Link) LinkSummary {
	summary := LinkSummary{
		ID:          link.ShortCode,
		LongURL:     link.LongURL,
		ShortCode:   link.ShortCode,
		ShortURL:    h.baseURL + "/" + link.ShortCode,
		Clicks:      link.Clicks,
		IsProtected: link.IsProtected,
	}
	if !link.CreatedAt.IsZero() {
		created := link.CreatedAt.Format(time.RFC3339)
		summary.CreatedAt = &created
	}
	if link.ExpiresAt != nil {
		expires := link.ExpiresAt.Format(time.RFC3339)
		summary.ExpiresAt = &expires
	}
	return summary
}

// respondError maps domain errors to the HTTP taxonomy. Anything
// unmapped becomes a generic 500 with the cause logged, never leaked.
func (h *LinkHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAliasTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrExpired):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrWrongPassword):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("unexpected error", "error", err)
		writeError(w, http.StatusInternalServerError, "an internal server error occurred")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
