package validation

import (
	"fmt"
	"strings"
)

const (
	MaxTeamNameLen = 64
	MaxCityLen     = 128
	MinPlayerCount = 1
	MaxPlayerCount = 100
	MinSecretLen   = 8
	MaxSecretBytes = 72 // bcrypt input limit
)

// RegisterTeamRequest mirrors the fields needed for team registration validation.
type RegisterTeamRequest struct {
	Name        string
	City        string
	PlayerCount int
	Secret      string
}

// ValidateRegisterTeamRequest validates the fields of a registration request.
func ValidateRegisterTeamRequest(req RegisterTeamRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if tooLong(name, MaxTeamNameLen) {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxTeamNameLen)})
	}

	errs = append(errs, validateCity(req.City)...)
	errs = append(errs, validatePlayerCount(req.PlayerCount)...)

	if req.Secret == "" {
		errs = append(errs, FieldError{Field: "secret", Message: "secret is required"})
	} else if len(req.Secret) < MinSecretLen {
		errs = append(errs, FieldError{Field: "secret", Message: fmt.Sprintf("secret must be at least %d characters", MinSecretLen)})
	} else if len(req.Secret) > MaxSecretBytes {
		errs = append(errs, FieldError{Field: "secret", Message: fmt.Sprintf("secret must be at most %d bytes", MaxSecretBytes)})
	}

	return errs
}

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Name   string
	Secret string
}

// ValidateLoginRequest checks presence only; credential checks happen in the auth service.
func ValidateLoginRequest(req LoginRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if req.Secret == "" {
		errs = append(errs, FieldError{Field: "secret", Message: "secret is required"})
	}

	return errs
}

// UpdateTeamRequest mirrors the fields needed for team profile update validation.
// Nil fields are not validated.
type UpdateTeamRequest struct {
	City        *string
	PlayerCount *int
}

// ValidateUpdateTeamRequest validates the fields of a team update request.
func ValidateUpdateTeamRequest(req UpdateTeamRequest) []FieldError {
	var errs []FieldError

	if req.City != nil {
		errs = append(errs, validateCity(*req.City)...)
	}
	if req.PlayerCount != nil {
		errs = append(errs, validatePlayerCount(*req.PlayerCount)...)
	}

	return errs
}

func validateCity(city string) []FieldError {
	city = strings.TrimSpace(city)
	if city == "" {
		return []FieldError{{Field: "city", Message: "city is required"}}
	}
	if tooLong(city, MaxCityLen) {
		return []FieldError{{Field: "city", Message: fmt.Sprintf("city must be at most %d characters", MaxCityLen)}}
	}
	return nil
}

func validatePlayerCount(n int) []FieldError {
	if n < MinPlayerCount || n > MaxPlayerCount {
		return []FieldError{{
			Field:   "playerCount",
			Message: fmt.Sprintf("playerCount must be between %d and %d", MinPlayerCount, MaxPlayerCount),
		}}
	}
	return nil
}
