package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/obrolan/chatbot-api/internal/app/chat"
	"github.com/obrolan/chatbot-api/internal/domain"
	"github.com/obrolan/chatbot-api/internal/observability"
)

// maxMultipartMemory caps how much of an upload is held in memory while
// reading the form. The file content itself is never consumed.
const maxMultipartMemory = 10 << 20

type Server struct {
	svc *chat.Service
}

func NewServer(svc *chat.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/chat", s.handleChat)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	Message string `json:"message"`
	History string `json:"history,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleChat accepts either a JSON body {message, history} or a multipart
// form with message, history and an optional file. Attachments contribute
// metadata only; their content is never parsed.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	in, ok := s.decodeTurn(w, r)
	if !ok {
		return
	}

	out, err := s.svc.SubmitTurn(r.Context(), in)
	if err != nil {
		s.writeTurnError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: out.BotMessage.Text})
}

func (s *Server) decodeTurn(w http.ResponseWriter, r *http.Request) (chat.SubmitTurnInput, bool) {
	var in chat.SubmitTurnInput

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			badRequest(w, "invalid multipart body")
			return in, false
		}
		in.Text = r.FormValue("message")
		in.Transcript = r.FormValue("history")

		if files := r.MultipartForm.File["file"]; len(files) > 0 {
			fh := files[0]
			in.Attachment = &domain.AttachmentRef{
				Name:      fh.Filename,
				SizeBytes: fh.Size,
				MimeType:  fh.Header.Get("Content-Type"),
			}
		}
		return in, true
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return in, false
	}
	in.Text = req.Message
	in.Transcript = req.History
	return in, true
}

func (s *Server) writeTurnError(w http.ResponseWriter, r *http.Request, err error) {
	log := observability.LoggerFromContext(r.Context())

	if errors.Is(err, domain.ErrEmptyTurn) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Message or file is required"})
		return
	}

	// Detail stays server-side; the client gets the localized category hint.
	log.Error("chat turn failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "Failed to get response from AI",
		Details: chat.UserFacingMessage(err),
	})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
