package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/api/response"
	"github.com/teamboard/teamboard/internal/api/validation"
	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/team"
)

type registerTeamRequest struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	PlayerCount int    `json:"playerCount"`
	Secret      string `json:"secret"`
}

type loginRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type updateTeamRequest struct {
	City        *string `json:"city,omitempty"`
	PlayerCount *int    `json:"playerCount,omitempty"`
}

type teamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	City        string `json:"city"`
	PlayerCount int    `json:"playerCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type sessionResponse struct {
	Team      teamResponse `json:"team"`
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresAt string       `json:"expiresAt"`
}

func toTeamResponse(t *team.Team) teamResponse {
	return teamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		City:        t.City,
		PlayerCount: t.PlayerCount,
		CreatedAt:   response.FormatTime(t.CreatedAt),
		UpdatedAt:   response.FormatTime(t.UpdatedAt),
	}
}

func toSessionResponse(s *auth.Session) sessionResponse {
	return sessionResponse{
		Team:      toTeamResponse(s.Team),
		Token:     s.Token,
		TokenType: "Bearer",
		ExpiresAt: response.FormatTime(s.ExpiresAt),
	}
}

// TeamHandler handles team registration, login and profile endpoints.
type TeamHandler struct {
	authService *auth.Service
	repo        team.Repository
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(authService *auth.Service, repo team.Repository) *TeamHandler {
	return &TeamHandler{
		authService: authService,
		repo:        repo,
	}
}

// Register handles POST /teams/register.
func (h *TeamHandler) Register(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req registerTeamRequest
	if !decodeJSON(w, r, &req, requestID) {
		return
	}

	fieldErrors := validation.ValidateRegisterTeamRequest(validation.RegisterTeamRequest{
		Name:        req.Name,
		City:        req.City,
		PlayerCount: req.PlayerCount,
		Secret:      req.Secret,
	})
	if len(fieldErrors) > 0 {
		validationFailed(w, fieldErrors, requestID)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.City = strings.TrimSpace(req.City)

	sess, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Name:        req.Name,
		City:        req.City,
		PlayerCount: req.PlayerCount,
		Secret:      req.Secret,
	})
	if err != nil {
		if errors.Is(err, team.ErrDuplicateTeamName) {
			response.Err(w, http.StatusConflict, "DUPLICATE_NAME", fmt.Sprintf("A team named %q already exists", req.Name), requestID)
			return
		}
		slog.Error("failed to register team", "error", err)
		response.Internal(w, "Failed to register team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toSessionResponse(sess), requestID)
}

// Login handles POST /teams/login.
func (h *TeamHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req loginRequest
	if !decodeJSON(w, r, &req, requestID) {
		return
	}

	fieldErrors := validation.ValidateLoginRequest(validation.LoginRequest{
		Name:   req.Name,
		Secret: req.Secret,
	})
	if len(fieldErrors) > 0 {
		validationFailed(w, fieldErrors, requestID)
		return
	}

	sess, err := h.authService.Login(r.Context(), strings.TrimSpace(req.Name), req.Secret)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Err(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", requestID)
			return
		}
		slog.Error("failed to log in team", "error", err)
		response.Internal(w, "Failed to log in", requestID)
		return
	}

	response.Success(w, http.StatusOK, toSessionResponse(sess), requestID)
}

// Me handles GET /teams/me.
func (h *TeamHandler) Me(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity, ok := requireIdentity(w, r, requestID)
	if !ok {
		return
	}

	t, err := h.repo.GetByID(r.Context(), identity.TeamID)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to get team", "error", err, "id", identity.TeamID)
		response.Internal(w, "Failed to get team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t), requestID)
}

// UpdateMe handles PATCH /teams/me.
func (h *TeamHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity, ok := requireIdentity(w, r, requestID)
	if !ok {
		return
	}

	var req updateTeamRequest
	if !decodeJSON(w, r, &req, requestID) {
		return
	}

	fieldErrors := validation.ValidateUpdateTeamRequest(validation.UpdateTeamRequest{
		City:        req.City,
		PlayerCount: req.PlayerCount,
	})
	if len(fieldErrors) > 0 {
		validationFailed(w, fieldErrors, requestID)
		return
	}

	if req.City != nil {
		trimmed := strings.TrimSpace(*req.City)
		req.City = &trimmed
	}

	t, err := h.repo.Update(r.Context(), identity.TeamID, team.UpdateFields{
		City:        req.City,
		PlayerCount: req.PlayerCount,
	})
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to update team", "error", err, "id", identity.TeamID)
		response.Internal(w, "Failed to update team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t), requestID)
}

// DeleteMe handles DELETE /teams/me. The team's posts are removed with it.
// Tokens already issued stay valid until they expire but resolve to no team.
func (h *TeamHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity, ok := requireIdentity(w, r, requestID)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), identity.TeamID); err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to delete team", "error", err, "id", identity.TeamID)
		response.Internal(w, "Failed to delete team", requestID)
		return
	}

	slog.Info("team deleted", "teamId", identity.TeamID)
	response.NoContent(w)
}
