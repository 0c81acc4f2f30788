package validation

import (
	"fmt"
	"strings"
)

const (
	MaxTitleLen = 200
	MaxBodyLen  = 10000
)

// CreatePostRequest mirrors the fields needed for create post validation.
type CreatePostRequest struct {
	Title string
	Body  string
}

// ValidateCreatePostRequest validates the fields of a create post request.
func ValidateCreatePostRequest(req CreatePostRequest) []FieldError {
	var errs []FieldError
	errs = append(errs, validateTitle(req.Title)...)
	errs = append(errs, validateBody(req.Body)...)
	return errs
}

// UpdatePostRequest mirrors the fields needed for update post validation.
// Nil fields are not validated.
type UpdatePostRequest struct {
	Title *string
	Body  *string
}

// ValidateUpdatePostRequest validates the fields of an update post request.
func ValidateUpdatePostRequest(req UpdatePostRequest) []FieldError {
	var errs []FieldError
	if req.Title != nil {
		errs = append(errs, validateTitle(*req.Title)...)
	}
	if req.Body != nil {
		errs = append(errs, validateBody(*req.Body)...)
	}
	return errs
}

func validateTitle(title string) []FieldError {
	title = strings.TrimSpace(title)
	if title == "" {
		return []FieldError{{Field: "title", Message: "title is required"}}
	}
	if tooLong(title, MaxTitleLen) {
		return []FieldError{{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLen)}}
	}
	return nil
}

func validateBody(body string) []FieldError {
	if strings.TrimSpace(body) == "" {
		return []FieldError{{Field: "body", Message: "body is required"}}
	}
	if tooLong(body, MaxBodyLen) {
		return []FieldError{{Field: "body", Message: fmt.Sprintf("body must be at most %d characters", MaxBodyLen)}}
	}
	return nil
}
