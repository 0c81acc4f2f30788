package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/teamboard/teamboard/internal/team"
)

// ErrInvalidCredentials is returned when a login names an unknown team or
// presents the wrong secret. The two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid team name or secret")

// RegisterInput holds the fields needed to register a team.
type RegisterInput struct {
	Name        string
	City        string
	PlayerCount int
	Secret      string
}

// Session is the result of a successful registration or login.
type Session struct {
	Team      *team.Team
	Token     string
	ExpiresAt time.Time
}

// Service provides team registration, login and token authentication.
type Service struct {
	teamRepo team.Repository
	hasher   SecretHasher
	tokens   *TokenService

	decoyOnce sync.Once
	decoyHash string
}

// decoySecret is hashed once so logins for unknown teams pay the same
// verification cost as a wrong secret.
const decoySecret = "teamboard-unknown-team"

// NewService creates a new auth Service.
func NewService(teamRepo team.Repository, hasher SecretHasher, tokens *TokenService) *Service {
	return &Service{
		teamRepo: teamRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register hashes the secret, creates the team and issues a token for it.
// A taken name surfaces as team.ErrDuplicateTeamName from the repository.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	hash, err := s.hasher.Hash(in.Secret)
	if err != nil {
		return nil, fmt.Errorf("hashing team secret: %w", err)
	}

	t := &team.Team{
		Name:        in.Name,
		City:        in.City,
		PlayerCount: in.PlayerCount,
		SecretHash:  hash,
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	sess, err := s.newSession(t)
	if err != nil {
		return nil, err
	}

	slog.Info("team registered", "teamId", t.ID, "name", t.Name)

	return sess, nil
}

// Login verifies a team's secret and issues a new token.
func (s *Service) Login(ctx context.Context, name, secret string) (*Session, error) {
	t, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			s.hasher.Verify(secret, s.unknownTeamHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding team by name: %w", err)
	}

	if !s.hasher.Verify(secret, t.SecretHash) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(t)
}

// Authenticate resolves a raw token to an Identity. It performs no store
// lookups: validity is decided by signature and expiry alone.
func (s *Service) Authenticate(_ context.Context, rawToken string) (*Identity, error) {
	return s.tokens.Verify(rawToken)
}

func (s *Service) unknownTeamHash() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash(decoySecret)
		if err != nil {
			slog.Error("failed to hash decoy secret", "error", err)
			return
		}
		s.decoyHash = hash
	})
	return s.decoyHash
}

func (s *Service) newSession(t *team.Team) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(Identity{TeamID: t.ID, TeamName: t.Name})
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &Session{Team: t, Token: token, ExpiresAt: expiresAt}, nil
}
