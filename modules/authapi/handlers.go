package authapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/authkit/authkit/pkg/auth"
	"github.com/authkit/authkit/pkg/authn"
	"github.com/authkit/authkit/pkg/identity"
	"github.com/authkit/authkit/pkg/sanitizer"
)

type handlers struct {
	cfg Config
	svc *auth.Service
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

type identityResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newIdentityResponse(i *identity.Identity) identityResponse {
	return identityResponse{
		ID:        i.ID.String(),
		Email:     i.Email,
		CreatedAt: i.CreatedAt,
	}
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email missing")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password missing")
		return
	}

	ident, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newIdentityResponse(ident))
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email missing")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password missing")
		return
	}

	tok, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.setSessionCookie(w, tok)

	// Echo the stored canonical form, not the raw submission.
	writeJSON(w, http.StatusOK, map[string]string{
		"email":   sanitizer.NormalizeEmail(req.Email),
		"message": "logged in",
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	tok := h.sessionCookie(r)
	if err := h.svc.Logout(r.Context(), tok); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) profile(w http.ResponseWriter, r *http.Request) {
	ident := authn.MustIdentityFromContext(r.Context())
	writeJSON(w, http.StatusOK, newIdentityResponse(ident))
}

func (h *handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email missing")
		return
	}

	tok, err := h.svc.IssueResetToken(r.Context(), req.Email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	// The token is returned in-band; delivering it out-of-band (email) is a
	// notification concern outside this module.
	writeJSON(w, http.StatusOK, map[string]string{"email": req.Email, "reset_token": tok})
}

func (h *handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ResetToken == "" {
		writeError(w, http.StatusBadRequest, "reset_token missing")
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "new_password missing")
		return
	}

	if err := h.svc.ConsumeResetToken(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func (h *handlers) sessionCookie(r *http.Request) string {
	c, err := r.Cookie(h.cfg.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (h *handlers) setSessionCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeServiceError translates domain errors into the HTTP contract.
func (h *handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, auth.ErrUnknownUser):
		writeError(w, http.StatusNotFound, "no user found for this email")
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusForbidden, "invalid reset token")
	case errors.Is(err, identity.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
