package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/api/response"
	"github.com/teamboard/teamboard/internal/api/validation"
	"github.com/teamboard/teamboard/internal/post"
)

type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type updatePostRequest struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

type postResponse struct {
	ID        string `json:"id"`
	TeamID    string `json:"teamId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toPostResponse(p *post.Post) postResponse {
	return postResponse{
		ID:        p.ID.String(),
		TeamID:    p.TeamID.String(),
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: response.FormatTime(p.CreatedAt),
		UpdatedAt: response.FormatTime(p.UpdatedAt),
	}
}

// PostHandler handles post CRUD endpoints. Mutations are restricted to the
// owning team.
type PostHandler struct {
	repo post.Repository
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(repo post.Repository) *PostHandler {
	return &PostHandler{repo: repo}
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity, ok := requireIdentity(w, r, requestID)
	if !ok {
		return
	}

	var req createPostRequest
	if !decodeJSON(w, r, &req, requestID) {
		return
	}

	fieldErrors := validation.ValidateCreatePostRequest(validation.CreatePostRequest{
		Title: req.Title,
		Body:  req.Body,
	})
	if len(fieldErrors) > 0 {
		validationFailed(w, fieldErrors, requestID)
		return
	}

	p := &post.Post{
		TeamID: identity.TeamID,
		Title:  strings.TrimSpace(req.Title),
		Body:   req.Body,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		if errors.Is(err, post.ErrOwnerNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to create post", "error", err, "teamId", identity.TeamID)
		response.Internal(w, "Failed to create post", requestID)
		return
	}

	response.Success(w, http.StatusOK, toPostResponse(p), requestID)
}

// List handles GET /posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filter := post.ListFilter{
		Page:  1,
		Limit: post.DefaultLimit,
	}

	q := r.URL.Query()
	if v := q.Get("team_id"); v != "" {
		teamID, err := uuid.Parse(v)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_PARAM", "team_id must be a valid UUID", requestID)
			return
		}
		filter.TeamID = &teamID
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			response.Err(w, http.StatusBadRequest, "INVALID_PARAM", "page must be a positive integer", requestID)
			return
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			response.Err(w, http.StatusBadRequest, "INVALID_PARAM", "limit must be a positive integer", requestID)
			return
		}
		filter.Limit = limit
	}
	if filter.Page > post.MaxPage(filter.Limit) {
		response.Err(w, http.StatusBadRequest, "INVALID_PARAM", "page is out of range", requestID)
		return
	}

	result, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		response.Internal(w, "Failed to list posts", requestID)
		return
	}

	items := make([]postResponse, 0, len(result.Posts))
	for i := range result.Posts {
		items = append(items, toPostResponse(&result.Posts[i]))
	}

	response.SuccessList(w, http.StatusOK, items, result.Total, result.Page, result.Limit, requestID)
}

// GetByID handles GET /posts/{id}.
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := urlID(w, r, requestID)
	if !ok {
		return
	}

	p, ok := h.load(w, r, id, requestID)
	if !ok {
		return
	}

	response.Success(w, http.StatusOK, toPostResponse(p), requestID)
}

// Update handles PATCH /posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := urlID(w, r, requestID)
	if !ok {
		return
	}

	if _, ok := h.loadOwned(w, r, id, requestID); !ok {
		return
	}

	var req updatePostRequest
	if !decodeJSON(w, r, &req, requestID) {
		return
	}

	fieldErrors := validation.ValidateUpdatePostRequest(validation.UpdatePostRequest{
		Title: req.Title,
		Body:  req.Body,
	})
	if len(fieldErrors) > 0 {
		validationFailed(w, fieldErrors, requestID)
		return
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}

	updated, err := h.repo.Update(r.Context(), id, post.UpdateFields{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Post not found", requestID)
			return
		}
		slog.Error("failed to update post", "error", err, "id", id)
		response.Internal(w, "Failed to update post", requestID)
		return
	}

	response.Success(w, http.StatusOK, toPostResponse(updated), requestID)
}

// Delete handles DELETE /posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := urlID(w, r, requestID)
	if !ok {
		return
	}

	if _, ok := h.loadOwned(w, r, id, requestID); !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Post not found", requestID)
			return
		}
		slog.Error("failed to delete post", "error", err, "id", id)
		response.Internal(w, "Failed to delete post", requestID)
		return
	}

	response.NoContent(w)
}

func (h *PostHandler) load(w http.ResponseWriter, r *http.Request, id uuid.UUID, requestID string) (*post.Post, bool) {
	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Post not found", requestID)
			return nil, false
		}
		slog.Error("failed to get post", "error", err, "id", id)
		response.Internal(w, "Failed to get post", requestID)
		return nil, false
	}
	return p, true
}

// loadOwned loads a post and rejects the request with 403 unless the
// authenticated team owns it.
func (h *PostHandler) loadOwned(w http.ResponseWriter, r *http.Request, id uuid.UUID, requestID string) (*post.Post, bool) {
	if _, ok := requireIdentity(w, r, requestID); !ok {
		return nil, false
	}

	p, ok := h.load(w, r, id, requestID)
	if !ok {
		return nil, false
	}

	if !middleware.Owns(r.Context(), p.TeamID) {
		slog.Warn("post ownership check failed", "id", id, "ownerId", p.TeamID, "requestId", requestID)
		response.Err(w, http.StatusForbidden, "FORBIDDEN", "team not authorized", requestID)
		return nil, false
	}

	return p, true
}
