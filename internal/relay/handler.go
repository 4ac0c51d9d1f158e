package relay

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/refundport/internal/logging"
)

// sendRequest is the wire form the portal posts to /api/send-email.
type sendRequest struct {
	ToEmail     string `json:"toEmail"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Handler serves the relay HTTP API.
type Handler struct {
	sender Sender
	logger logging.Logger
}

func NewHandler(sender Sender, logger logging.Logger) *Handler {
	return &Handler{sender: sender, logger: logger}
}

// NewRouter constructs the relay's HTTP handler.
//
// Routes:
//
//	POST /api/send-email → Handler.SendEmail
//	GET  /api/health     → Handler.Health
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(allowAnyOrigin)

	r.Route("/api", func(r chi.Router) {
		r.Post("/send-email", h.SendEmail)
		r.Get("/health", h.Health)
	})

	return r
}

// allowAnyOrigin mirrors the permissive CORS policy the portal frontend
// relies on.
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SendEmail accepts a rendered message and submits it through the sender.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, sendResponse{Success: false, Message: "invalid request body"})
		return
	}

	req.ToEmail = strings.TrimSpace(req.ToEmail)
	if req.ToEmail == "" || !strings.Contains(req.ToEmail, "@") {
		h.writeJSON(w, http.StatusBadRequest, sendResponse{Success: false, Message: "invalid recipient"})
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		h.writeJSON(w, http.StatusBadRequest, sendResponse{Success: false, Message: "subject is required"})
		return
	}

	if err := h.sender.Send(r.Context(), req.ToEmail, req.Subject, req.HTMLContent); err != nil {
		h.logger.Error(r.Context(), "mail submission failed", "error", err.Error())
		h.writeJSON(w, http.StatusBadGateway, sendResponse{Success: false, Message: "mail submission failed"})
		return
	}

	h.logger.Info(r.Context(), "mail submitted", "subject", req.Subject)
	h.writeJSON(w, http.StatusOK, sendResponse{Success: true})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
