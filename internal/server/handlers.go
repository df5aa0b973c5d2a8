package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/simplifyx/scamguard/internal/database"
)

// listsResponse is the wire shape of GET /api/lists. Field names follow
// the detection clients' expectations.
type listsResponse struct {
	SuspiciousTLDs []string `json:"tldsSuspeitos"`  //nolint:tagliatelle // client wire format
	KnownSites     []string `json:"sitesConhecidos"` //nolint:tagliatelle // client wire format
}

// handleRoot answers the liveness probe.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ScamGuard API is running\n"))
}

// handleLists serves the threat lists. When a database is attached the
// lists are read from it so edits survive restarts; otherwise the in-memory
// lists answer.
func (s *Server) handleLists(w http.ResponseWriter, r *http.Request) {
	resp := listsResponse{
		SuspiciousTLDs: s.lists.SuspiciousTLDs(),
		KnownSites:     s.lists.KnownSites(),
	}

	if s.db != nil {
		data, err := s.db.ThreatLists(r.Context())
		if err != nil {
			s.logger.Error("failed to load threat lists", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load threat lists")
			return
		}
		if len(data.SuspiciousTLDs) > 0 {
			resp.SuspiciousTLDs = data.SuspiciousTLDs
		}
		if len(data.KnownSites) > 0 {
			resp.KnownSites = data.KnownSites
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleAnalyzeDomain answers domain-age lookups, cached by the oracle.
func (s *Server) handleAnalyzeDomain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hostname string `json:"hostname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Hostname) == "" {
		writeError(w, http.StatusBadRequest, "hostname is required")
		return
	}

	age, err := s.oracle.AgeOf(r.Context(), req.Hostname)
	if err != nil {
		s.logger.Warn("domain age lookup failed", "hostname", req.Hostname, "error", err)
		writeError(w, http.StatusBadGateway, "domain age lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, age)
}

// handleAnalyzeContent classifies page text against the keyword table.
func (s *Server) handleAnalyzeContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := s.classifier.Classify(req.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, "text is not valid UTF-8")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleLogin verifies credentials against the users table and issues the
// placeholder session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "user store not configured")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.db.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error("user lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.startSession(SessionToken, user.ID)
	s.logger.Info("user logged in", "email", req.Email)

	writeJSON(w, http.StatusOK, map[string]string{
		"token": SessionToken,
		"email": user.Email,
	})
}

// handleWhitelist serves the logged-in user's whitelisted domains.
func (s *Server) handleWhitelist(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "user store not configured")
		return
	}

	token := bearerToken(r)
	userID, ok := s.session(token)
	if !ok {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}

	domains, err := s.db.Whitelist(r.Context(), userID)
	if err != nil {
		s.logger.Error("whitelist lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load whitelist")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"whitelist": domains})
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the API's error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
