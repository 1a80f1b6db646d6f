package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/server/accounts"
	"github.com/geosick-health/geosick/internal/server/activity"
)

type registerRequest struct {
	Phone       string `json:"phone"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Password    string `json:"password"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type sessionRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken string `json:"access_token"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) registerAccount(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	created, err := h.accounts.Register(r.Context(), accounts.Account{
		Phone:       req.Phone,
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorMissingFields):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrorDuplicatePhone):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error(r.Context(), "account registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:    created.ID,
		Phone: created.Phone,
		Name:  created.Name,
		Role:  created.Role,
	})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, err := h.accounts.Authenticate(r.Context(), req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error(r.Context(), "session creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{AccessToken: token})
}

func (h *Handler) appendActivity(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var entry activity.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	// Clients may only push entries for their own account.
	if entry.UserPhone != claims.Phone && claims.Role != accounts.RoleAdmin {
		writeError(w, http.StatusForbidden, "cannot push activity for another account")
		return
	}

	if err := h.activity.Append(r.Context(), entry); err != nil {
		if errors.Is(err, common.ErrorMissingFields) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "activity append failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) listGlobalActivity(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if claims.Role != accounts.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.activity.ListGlobal(r.Context(), limit)
	if err != nil {
		h.logger.Error(r.Context(), "activity listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}
