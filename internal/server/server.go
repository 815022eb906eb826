package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"newsroomai/internal/analysis"
	"newsroomai/internal/app"
	"newsroomai/internal/auth"
	"newsroomai/internal/extract"
	"newsroomai/internal/util"
	"newsroomai/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App
}

// Server exposes the analysis, article, and auth endpoints.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app: cfg.App,
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler wrapped in the standard middleware.
func (s *Server) Router() http.Handler {
	var h http.Handler = s.mux
	h = util.WithRequestLog(h)
	h = util.WithRequestID(h)
	h = util.WithCORS(h)
	h = util.WithSecurityHeaders(h)
	return h
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/rewrite", s.handleRewrite)
	s.mux.HandleFunc("/articles", s.handleArticles)
	s.mux.HandleFunc("/articles/", s.handleArticleByID)

	s.mux.HandleFunc("/auth/register", s.handleRegister)
	s.mux.HandleFunc("/auth/login", s.handleLogin)
	s.mux.HandleFunc("/auth/forgot-password", s.handleForgotPassword)
	s.mux.HandleFunc("/auth/reset-password", s.handleResetPassword)
	s.mux.Handle("/auth/me", s.authenticated(s.handleMe))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// auth wrappers

type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		user, err := s.app.UserFromToken(token)
		if err != nil {
			slog.Warn("token rejected", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, user)
	})
}

// authorID resolves an optional bearer token to an author id; anonymous
// callers fall back to the default author.
func (s *Server) authorID(r *http.Request) uint {
	token, ok := bearerToken(r)
	if !ok {
		return 0
	}
	user, err := s.app.UserFromToken(token)
	if err != nil {
		return 0
	}
	return user.ID
}

// analysis handlers

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	article, err := s.app.Analyze(r.Context(), req.Text, req.Link, s.authorID(r))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req rewriteRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rewritten, err := s.app.Rewrite(r.Context(), req.ArticleID, req.Text)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"rewritten_text": rewritten})
}

// article handlers

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	articles, err := s.app.ListArticles()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

func (s *Server) handleArticleByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/articles/")
	idPart, suffix, _ := strings.Cut(rest, "/")
	id64, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}
	id := uint(id64)

	if suffix == "download_pdf" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleDownloadPDF(w, id)
		return
	}
	if suffix != "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		article, err := s.app.GetArticle(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, article)
	case http.MethodPut:
		var req updateArticleRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		article, err := s.app.UpdateArticleContent(id, req.Text)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, article)
	case http.MethodDelete:
		if err := s.app.DeleteArticle(id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleDownloadPDF(w http.ResponseWriter, id uint) {
	article, err := s.app.GetArticle(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdfFilename(article.Title)+`"`)
	if err := renderArticlePDF(w, article); err != nil {
		slog.Error("render pdf", "article_id", id, "err", err)
	}
}

// auth handlers

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req registerRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if _, err := s.app.Register(req.Username, req.Email, req.Password); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	token, user, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"email":        user.Email,
	})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req forgotRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	token, err := s.app.ForgotPassword(req.Email)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":     "Use this token to reset password",
		"reset_token": token,
	})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req resetRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.app.ResetPassword(req.Token, req.NewPassword); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// request/response types

type analyzeRequest struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type rewriteRequest struct {
	ArticleID uint   `json:"article_id"`
	Text      string `json:"text"`
}

type updateArticleRequest struct {
	Text string `json:"text"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// helpers

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAppError maps the application error taxonomy onto HTTP statuses.
// Model-output failures surface as 502 since the upstream provider, not the
// client, produced the bad payload.
func writeAppError(w http.ResponseWriter, err error) {
	var missing *analysis.MissingFieldError
	switch {
	case errors.Is(err, app.ErrArticleNotFound), errors.Is(err, app.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrEmailExists), errors.Is(err, app.ErrUsernameExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrEmptyContent), errors.Is(err, extract.ErrExtractionFailed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrResetDisabled):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, analysis.ErrMalformedResponse),
		errors.Is(err, analysis.ErrInvalidBiasScore),
		errors.As(err, &missing):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		slog.Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
